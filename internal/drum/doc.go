// Package drum simulates a single ball bouncing inside a rotating, vaned
// drum and reports which surface it struck.
//
// The simulation works in the rotating reference frame of the drum, so the
// wall and vanes are stationary geometry while gravity rotates and the
// fictitious centrifugal and Coriolis terms act on the ball:
//
//   - [Simulation]: owns drum geometry, ball state and force toggles
//   - [Surface]: a logical region of the drum interior (wall segment or
//     vane face) identified by discrete impacts
//   - [Listener]: callback receiving (surface, impact speed) per contact
//
// # Example
//
//	sim, _ := drum.New(drum.DefaultDrumConfig())
//	sim.OnCollision(func(sf drum.Surface, speed float64) {
//		fmt.Println(sf.ID, speed)
//	})
//	for range 240 {
//		sim.Advance(1.0 / 60.0)
//	}
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe. The host must drive Step and
// all configuration mutators from a single goroutine; listeners are invoked
// synchronously and must not call back into the simulation.
package drum
