package traffic

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnLaneTable(t *testing.T) {
	tests := []struct {
		entry Approach
		lane  Lane
		exit  Approach
		speed int
		x, y  int
	}{
		{North, LaneLeft, West, 8, 480, 704},
		{North, LaneStraight, North, 12, 496, 704},
		{North, LaneRight, East, 4, 512, 704},
		{South, LaneLeft, West, 4, 432, 0},
		{South, LaneStraight, South, 12, 448, 0},
		{South, LaneRight, East, 8, 464, 0},
		{East, LaneLeft, North, 8, 0, 360},
		{East, LaneStraight, East, 12, 0, 376},
		{East, LaneRight, South, 4, 0, 392},
		{West, LaneLeft, North, 4, 944, 312},
		{West, LaneStraight, West, 12, 944, 328},
		{West, LaneRight, South, 8, 944, 344},
	}

	for _, tt := range tests {
		t.Run(tt.entry.String()+"/"+tt.lane.String(), func(t *testing.T) {
			sim, _ := newTestSimulation(t, 1)
			v := sim.SpawnLane(tt.entry, tt.lane)

			assert.Equal(t, tt.exit, v.Exit)
			assert.Equal(t, tt.speed, v.Speed)
			assert.Equal(t, tt.x, v.X)
			assert.Equal(t, tt.y, v.Y)
			assert.Equal(t, tt.entry.Vertical(), v.Vertical)
			assert.Equal(t, Color(tt.entry), v.Color)
			assert.Equal(t, 0, v.Index)
			assert.NotEqual(t, uuid.Nil, v.ID)
			assert.False(t, v.Retired)
			assert.True(t, v.SpawnedAt.Equal(testEpoch))

			// Spawned inside the canvas so the first tick moves it
			assert.False(t, outside(v, testConfig))
		})
	}
}

func TestSpawnChoosesEveryLane(t *testing.T) {
	sim, _ := newTestSimulation(t, 7)

	seen := map[Lane]int{}
	for i := 0; i < 300; i++ {
		v := sim.Spawn(South)
		assert.Equal(t, South, v.Entry)
		assert.Equal(t, i, v.Index)
		seen[v.Lane]++
	}

	require.Len(t, seen, LaneCount)
	for lane, n := range seen {
		assert.Greater(t, n, 50, "lane %s drawn %d times", lane, n)
	}
}

func TestSpawnRandomChoosesEveryApproach(t *testing.T) {
	sim, _ := newTestSimulation(t, 3)

	seen := map[Approach]int{}
	for i := 0; i < 400; i++ {
		seen[sim.SpawnRandom().Entry]++
	}
	assert.Len(t, seen, len(Approaches))
	assert.Equal(t, 400, sim.Len())
}

func TestSpawnIsLogged(t *testing.T) {
	sim, hook := newTestSimulation(t, 1)
	v := sim.SpawnLane(East, LaneRight)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "vehicle spawned", entry.Message)
	assert.Equal(t, v.ID, entry.Data["vehicle"])
	assert.Equal(t, South, entry.Data["exit"])
}

func TestSpawnInvalidPanics(t *testing.T) {
	sim, _ := newTestSimulation(t, 1)

	assert.Panics(t, func() { sim.SpawnLane(Approach(9), LaneLeft) })
	assert.Panics(t, func() { sim.SpawnLane(North, Lane(3)) })
	assert.Equal(t, 0, sim.Len())
}

func TestCanSpawn(t *testing.T) {
	sim, _ := newTestSimulation(t, 1)

	for _, a := range Approaches {
		assert.True(t, sim.CanSpawn(a), a.String())
	}

	sim.SpawnLane(North, LaneStraight)
	assert.False(t, sim.CanSpawn(North))
	assert.True(t, sim.CanSpawn(South))
	assert.True(t, sim.CanSpawn(East))
	assert.True(t, sim.CanSpawn(West))

	// A fast vehicle clears its slot after two ticks
	sim.Advance()
	assert.False(t, sim.CanSpawn(North))
	sim.Advance()
	assert.True(t, sim.CanSpawn(North))
}
