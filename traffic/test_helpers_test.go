package traffic

import (
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lixenwraith/smart-road/clock"
	"github.com/lixenwraith/smart-road/config"
)

var (
	testConfig = config.NewLaneConfig(960, 720, 16)
	testEpoch  = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	testTick   = 16 * time.Millisecond
)

// newTestSimulation uses a stepping clock and a seeded source so runs repeat
func newTestSimulation(t *testing.T, seed int64) (*Simulation, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	sim := New(testConfig,
		WithClock(clock.NewStepping(testEpoch, testTick)),
		WithRand(rand.New(rand.NewSource(seed))),
		WithLogger(logger),
	)
	return sim, hook
}

// place injects hand-built vehicles at arbitrary positions
func place(s *Simulation, vs ...Vehicle) {
	for _, v := range vs {
		v.Index = len(s.vehicles)
		v.Color = colorOf(v.Entry)
		v.Vertical = v.Entry.Vertical()
		v.SpawnedAt = s.clock.Now()
		s.vehicles = append(s.vehicles, v)
	}
}

// runUntilEmpty advances until no vehicles remain or the budget runs out
func runUntilEmpty(s *Simulation, budget int) int {
	ticks := 0
	for s.Len() > 0 && ticks < budget {
		s.Advance()
		ticks++
	}
	return ticks
}

func assertNoOverlap(t *testing.T, vs []Vehicle, lw int) {
	t.Helper()
	for i := range vs {
		for j := i + 1; j < len(vs); j++ {
			if Overlaps(vs[i].X, vs[i].Y, vs[j].X, vs[j].Y, lw) {
				t.Fatalf("vehicles %d (%d,%d) and %d (%d,%d) overlap",
					i, vs[i].X, vs[i].Y, j, vs[j].X, vs[j].Y)
			}
		}
	}
}
