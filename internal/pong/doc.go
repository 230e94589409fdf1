// Package pong implements the table tennis simulation: two paddles, one ball
// and a score, advanced one frame at a time.
//
// The package does no I/O. Everything that changes between frames is handed
// to Advance as a value: elapsed time, held keys and the current arena size.
// Randomness comes from an injected Coin so tests can pin every reset.
//
// # Basic Usage
//
//	coin := randutil.NewCoin(42)
//	bounds := pong.Bounds{Width: 800, Height: 600}
//	s := pong.NewState(bounds, pong.DefaultParams(), coin)
//
//	for frame := range frames {
//	    res := s.Advance(frame.DT, frame.Input, bounds)
//	    if res.Scorer != pong.NoSide {
//	        // point scored, ball already back in the middle
//	    }
//	}
//
// # Step Order
//
// Advance applies, in order: paddle movement and clamping, ball
// integration, scoring reset, wall bounce, paddle collision. The order is
// part of the contract; replays depend on it.
package pong
