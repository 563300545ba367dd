package drum

// Listener receives one callback per emitted collision: the struck surface
// and the impact speed along the collision normal, m/s.
type Listener func(surface Surface, impactSpeed float64)

// OnCollision registers a listener. Listeners are invoked synchronously in
// registration order and must not call back into the simulation.
func (s *Simulation) OnCollision(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// ClearDebounce drops the debounce slot so the next impact on any surface
// fires immediately.
func (s *Simulation) ClearDebounce() {
	s.lastHit = ""
	s.lastHitExpiry = s.now()
}

// trigger emits a collision event unless it is filtered or debounced.
//
// The debounce is a single-slot memory: only a repeat of the most recently
// triggered surface ID inside the cooldown window is suppressed; a hit on a
// different surface always passes and takes over the slot. The lint trap
// discards quiet impacts without touching the slot.
func (s *Simulation) trigger(surface Surface, impactSpeed float64) {
	if s.lintTrap && impactSpeed < s.lintThreshold {
		return
	}

	now := s.now()
	if surface.ID == s.lastHit && now.Before(s.lastHitExpiry) {
		return
	}
	s.lastHit = surface.ID
	s.lastHitExpiry = now.Add(debounceWindow)

	// Snapshot so a listener registering another listener cannot mutate
	// the slice mid-iteration.
	active := s.listeners
	for _, fn := range active {
		fn(surface, impactSpeed)
	}
}
