package scene

import (
	"sync"
)

// Store is the particle/dust batch shared by the render loop and the sequencer
// The sequencer only raises pulses; the render loop decays and reads them
type Store struct {
	mu        sync.Mutex
	text      string
	hue       float64
	particles []TextParticle
	dust      []DustMote
}

// Frame is a copy of the store taken for one render pass
type Frame struct {
	Particles []TextParticle
	Dust      []DustMote
	Hue       float64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Replace discards the current batch in favour of a new submission
func (s *Store) Replace(text string, hue float64, particles []TextParticle, dust []DustMote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	s.hue = hue
	s.particles = particles
	s.dust = dust
}

// Pulse flashes the i-th particle of the batch, counting glyphs only (spaces
// have no particle), and returns false if the batch is shorter
func (s *Store) Pulse(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.particles) {
		return false
	}
	s.particles[i].Pulse = 1.0
	return true
}

// Advance decays every pulse by factor and copies the batch into dst
// dst slices are reused across frames to avoid per-frame allocation
func (s *Store) Advance(factor float64, dst Frame) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.particles {
		p := s.particles[i].Pulse * factor
		if p < 0 {
			p = 0
		}
		s.particles[i].Pulse = p
	}

	dst.Particles = append(dst.Particles[:0], s.particles...)
	dst.Dust = append(dst.Dust[:0], s.dust...)
	dst.Hue = s.hue
	return dst
}

// Text returns the current submission
func (s *Store) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Hue returns the current base hue in degrees
func (s *Store) Hue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hue
}

// Counts returns particle and dust counts
func (s *Store) Counts() (particles, dust int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.particles), len(s.dust)
}

// Particle returns a copy of particle i
func (s *Store) Particle(i int) (TextParticle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.particles) {
		return TextParticle{}, false
	}
	return s.particles[i], true
}
