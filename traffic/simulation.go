// Package traffic is the intersection simulation core: spawning, path
// following, the per-tick give-way pass and transit statistics
package traffic

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/smart-road/clock"
	"github.com/lixenwraith/smart-road/config"
)

// Simulation owns the live vehicles and the accumulated statistics
// It is single-writer: Spawn and Advance must be called from one goroutine
type Simulation struct {
	cfg   config.LaneConfig
	clock clock.Provider
	rng   *rand.Rand
	log   logrus.FieldLogger

	// Spawn order; Index of each vehicle equals its position after Advance
	vehicles []Vehicle
	stats    Stats

	// Scratch buffer of claimed positions, reused across ticks
	claims []point
}

type point struct {
	x, y int
}

// Option configures a Simulation
type Option func(*Simulation)

// WithClock sets the time source read once per tick and at spawn
func WithClock(p clock.Provider) Option {
	return func(s *Simulation) { s.clock = p }
}

// WithRand sets the lane and approach source for random spawns
func WithRand(r *rand.Rand) Option {
	return func(s *Simulation) { s.rng = r }
}

// WithLogger sets the logger for spawn and retirement events
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Simulation) { s.log = l }
}

// New creates an empty simulation for a fixed lane geometry
func New(cfg config.LaneConfig, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:   cfg,
		clock: clock.NewSystem(),
		stats: newStats(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}

// Config returns the lane geometry the simulation was built with
func (s *Simulation) Config() config.LaneConfig {
	return s.cfg
}

// Spawn appends a vehicle on a uniformly chosen lane of entry
func (s *Simulation) Spawn(entry Approach) Vehicle {
	return s.SpawnLane(entry, Lane(s.rng.Intn(LaneCount)))
}

// SpawnRandom appends a vehicle on a uniformly chosen approach and lane
func (s *Simulation) SpawnRandom() Vehicle {
	return s.Spawn(s.RandomApproach())
}

// RandomApproach draws an approach from the simulation's source
func (s *Simulation) RandomApproach() Approach {
	return Approaches[s.rng.Intn(len(Approaches))]
}

// SpawnLane appends a vehicle on a specific entry lane
func (s *Simulation) SpawnLane(entry Approach, lane Lane) Vehicle {
	v := newVehicle(entry, lane, len(s.vehicles), s.cfg, s.clock.Now())
	s.vehicles = append(s.vehicles, v)

	s.log.WithFields(logrus.Fields{
		"vehicle": v.ID,
		"entry":   v.Entry,
		"exit":    v.Exit,
		"speed":   v.Speed,
	}).Debug("vehicle spawned")
	return v
}

// CanSpawn reports whether every entry slot of the approach is clear of
// live footprints, so a spawn there cannot land on another vehicle
func (s *Simulation) CanSpawn(entry Approach) bool {
	lw := s.cfg.LaneWidth
	for lane := LaneLeft; lane <= LaneRight; lane++ {
		x, y := spawnPoint(entry, lane, s.cfg)
		for i := range s.vehicles {
			if Overlaps(x, y, s.vehicles[i].X, s.vehicles[i].Y, lw) {
				return false
			}
		}
	}
	return true
}

// Advance runs one tick
// Vehicles are processed in index order so earlier spawns claim contested
// space first: each checks its prospective footprint against the claims of
// every other vehicle, already moved or not, and either commits or gives way.
// Vehicles found off the canvas are retired, then the collection is compacted
func (s *Simulation) Advance() {
	for i := range s.vehicles {
		if s.vehicles[i].Index != i {
			panic(fmt.Sprintf("vehicle index %d at position %d", s.vehicles[i].Index, i))
		}
	}

	now := s.clock.Now()
	lw := s.cfg.LaneWidth

	s.claims = s.claims[:0]
	for i := range s.vehicles {
		s.claims = append(s.claims, point{s.vehicles[i].X, s.vehicles[i].Y})
	}

	for i := range s.vehicles {
		v := &s.vehicles[i]

		if outside(*v, s.cfg) {
			s.retire(v, now)
			continue
		}

		x, y, vertical := nextPosition(*v, s.cfg)
		if s.blocked(x, y, v.Index, lw) {
			s.stats.GiveWays++
			continue
		}

		s.claims[v.Index] = point{x, y}
		v.X, v.Y, v.Vertical = x, y, vertical
	}

	s.vehicles = lo.Filter(s.vehicles, func(v Vehicle, _ int) bool {
		return !v.Retired
	})
	for i := range s.vehicles {
		s.vehicles[i].Index = i
	}
}

func (s *Simulation) blocked(x, y, self, lw int) bool {
	for i, c := range s.claims {
		if i == self {
			continue
		}
		if Overlaps(x, y, c.x, c.y, lw) {
			return true
		}
	}
	return false
}

func (s *Simulation) retire(v *Vehicle, now time.Time) {
	elapsed := now.Sub(v.SpawnedAt)
	v.Retired = true
	s.stats.record(elapsed)

	s.log.WithFields(logrus.Fields{
		"vehicle": v.ID,
		"entry":   v.Entry,
		"exit":    v.Exit,
		"elapsed": elapsed,
	}).Debug("vehicle passed")
}

// Vehicles returns a copy of the live collection in index order
func (s *Simulation) Vehicles() []Vehicle {
	out := make([]Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// Len returns the number of live vehicles
func (s *Simulation) Len() int {
	return len(s.vehicles)
}

// Stats returns a snapshot of the accumulated statistics
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Report formats the current statistics
func (s *Simulation) Report() string {
	return s.stats.Report()
}
