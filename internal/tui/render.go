package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/termpong/internal/pong"
)

// Lines taken by everything but the arena's inside: the score line, the
// border and the status/help line.
const (
	scoreLines  = 1
	borderSize  = 2
	footerLines = 1

	minCols = 20
	minRows = 6
)

// ArenaSize returns how many cells of a width x height terminal the inside
// of the arena gets.
func ArenaSize(width, height int) (cols, rows int) {
	return width - borderSize, height - borderSize - scoreLines - footerLines
}

type cell uint8

const (
	cellEmpty cell = iota
	cellDivider
	cellLeft
	cellRight
	cellBall
)

// Render draws s scaled onto a cols x rows grid, framed by the theme's
// border, with the score above it. A snapshot without bounds draws an empty
// arena.
func Render(s pong.Snapshot, cols, rows int, th *Theme) string {
	if cols < 1 || rows < 1 {
		return ""
	}

	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		if y%2 == 0 {
			grid[y][cols/2] = cellDivider
		}
	}

	if s.Bounds.Width > 0 && s.Bounds.Height > 0 {
		sx := float64(cols) / s.Bounds.Width
		sy := float64(rows) / s.Bounds.Height

		fill := func(r pong.Rect, c cell) {
			x0, x1 := span(r.Min.X, r.Max.X, sx, cols)
			y0, y1 := span(r.Min.Y, r.Max.Y, sy, rows)
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					grid[y][x] = c
				}
			}
		}
		fill(s.LeftPaddle.Rect(), cellLeft)
		fill(s.RightPaddle.Rect(), cellRight)

		bx := clampCell(int(math.Floor(s.Ball.Pos.X*sx)), cols)
		by := clampCell(int(math.Floor(s.Ball.Pos.Y*sy)), rows)
		grid[by][bx] = cellBall
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = renderRow(row, th)
	}
	arena := th.Border.Render(strings.Join(lines, "\n"))

	score := th.Score.Render(fmt.Sprintf("%d   %d", s.Score.Left, s.Score.Right))
	score = lipgloss.PlaceHorizontal(lipgloss.Width(arena), lipgloss.Center, score)

	return lipgloss.JoinVertical(lipgloss.Left, score, arena)
}

// renderRow styles runs of identical cells together.
func renderRow(row []cell, th *Theme) string {
	var b strings.Builder
	start := 0
	for x := 1; x <= len(row); x++ {
		if x < len(row) && row[x] == row[start] {
			continue
		}
		b.WriteString(renderRun(row[start], x-start, th))
		start = x
	}
	return b.String()
}

func renderRun(c cell, n int, th *Theme) string {
	switch c {
	case cellDivider:
		return th.Divider.Render(strings.Repeat(string(th.Glyphs.Divider), n))
	case cellLeft:
		return th.LeftPaddle.Render(strings.Repeat(string(th.Glyphs.Paddle), n))
	case cellRight:
		return th.RightPaddle.Render(strings.Repeat(string(th.Glyphs.Paddle), n))
	case cellBall:
		return th.Ball.Render(strings.Repeat(string(th.Glyphs.Ball), n))
	default:
		return strings.Repeat(" ", n)
	}
}

// span maps [lo, hi] in simulation units to an inclusive cell range, always
// at least one cell wide.
func span(lo, hi, scale float64, n int) (int, int) {
	a := int(math.Floor(lo * scale))
	b := int(math.Ceil(hi*scale)) - 1
	if b < a {
		b = a
	}
	return clampCell(a, n), clampCell(b, n)
}

func clampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
