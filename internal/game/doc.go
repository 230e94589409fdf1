// Package game drives a pong session in real time.
//
// Engine owns a *pong.State and turns wall-clock time into simulation steps:
//
//	engine := game.NewEngine(state, quartz.NewReal(), logger)
//	frame := engine.Step(keys.Snapshot(), bounds)
//
// Each Step measures dt from the engine's clock, caps it at the maximum frame
// length, advances the state and hands the resulting Frame to every
// registered Observer. Recorders and the spectator feed are observers.
//
// # Deterministic Testing
//
// Pass a quartz mock clock and advance it explicitly:
//
//	clock := quartz.NewMock(t)
//	engine := game.NewEngine(state, clock, logger)
//	engine.Step(in, bounds) // dt 0
//	clock.Advance(16 * time.Millisecond).MustWait(ctx)
//	engine.Step(in, bounds) // dt 0.016
package game
