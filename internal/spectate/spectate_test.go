package spectate

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/termpong/internal/game"
	"github.com/lox/termpong/internal/pong"
	"github.com/lox/termpong/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func startFeed(t *testing.T) (*Server, string) {
	t.Helper()
	hello := HelloData{SessionID: "01test", Params: pong.DefaultParams()}
	srv := NewServer(hello, quartz.NewReal(), quietLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func testFrame(seq uint64) game.Frame {
	arena := pong.Bounds{Width: 800, Height: 600}
	state := pong.NewState(arena, pong.DefaultParams(), randutil.NewCoin(int64(seq)))
	state.Score = pong.Score{Left: int(seq), Right: 1}
	return game.Frame{
		Seq:      seq,
		Bounds:   arena,
		Result:   pong.StepResult{Scorer: pong.Left},
		Snapshot: state.Snapshot(arena),
	}
}

func TestHealth(t *testing.T) {
	srv := NewServer(HelloData{}, quartz.NewReal(), quietLogger())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestViewerReceivesHelloAndFrames(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv, url := startFeed(t)
	client, err := Dial(ctx, url, quietLogger())
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "01test", client.Hello().SessionID)
	assert.Equal(t, pong.DefaultParams(), client.Hello().Params)
	require.Equal(t, 1, srv.Viewers())

	want := testFrame(3)
	srv.ObserveFrame(want)

	select {
	case got, ok := <-client.Frames():
		require.True(t, ok)
		assert.Equal(t, want.Seq, got.Seq)
		assert.Equal(t, want.Snapshot, got.Snapshot)
		assert.Equal(t, pong.Left, got.Result.Scorer)
	case <-ctx.Done():
		t.Fatal("timed out waiting for frame")
	}
}

func TestServerCloseEndsFeed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv, url := startFeed(t)
	client, err := Dial(ctx, url, quietLogger())
	require.NoError(t, err)
	defer client.Close()

	srv.Close()

	for {
		select {
		case _, ok := <-client.Frames():
			if !ok {
				assert.NoError(t, client.Err())
				return
			}
		case <-ctx.Done():
			t.Fatal("feed did not close")
		}
	}
}

func TestClosedServerRefusesViewers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv, url := startFeed(t)
	srv.Close()

	_, err := Dial(ctx, url, quietLogger())
	require.Error(t, err)
	assert.Equal(t, 0, srv.Viewers())
	srv.ObserveFrame(testFrame(1))
	assert.Equal(t, 0, srv.Viewers())
}

func TestViewerDisconnectIsUnregistered(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv, url := startFeed(t)
	client, err := Dial(ctx, url, quietLogger())
	require.NoError(t, err)
	require.Equal(t, 1, srv.Viewers())

	require.NoError(t, client.Close())

	assert.Eventually(t, func() bool { return srv.Viewers() == 0 }, 2*time.Second, 10*time.Millisecond)
	srv.ObserveFrame(testFrame(1)) // no viewers left, must not block
}

func TestDialRejectsNonFeed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", quietLogger())
	assert.Error(t, err)
}
