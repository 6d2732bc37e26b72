package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSoundManagerGracefulDegradation verifies cues don't panic without a device
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	assert.NotPanics(t, func() {
		sm.PlayHorn()
		sm.PlayChime()
		sm.OnGiveWay(3)
		sm.OnPassed(1)
		sm.Cleanup()
	})
	assert.True(t, sm.lastHorn.IsZero(), "horn must not arm its cooldown when silent")
}

// TestSoundManagerInitialization tolerates CI environments without audio
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	defer sm.Cleanup()

	assert.NoError(t, sm.Initialize(), "second initialization is a no-op")
}

func TestHornCooldown(t *testing.T) {
	sm := NewSoundManager()
	if err := sm.Initialize(); err != nil {
		t.Skipf("no audio device: %v", err)
	}
	defer sm.Cleanup()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	sm.PlayHorn()
	first := sm.lastHorn
	now = now.Add(hornCooldown / 2)
	sm.PlayHorn()
	assert.Equal(t, first, sm.lastHorn)

	now = now.Add(hornCooldown)
	sm.PlayHorn()
	assert.Equal(t, now, sm.lastHorn)
}

func streamAll(t *testing.T, s beep.Streamer, n int) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, n)
	got, ok := s.Stream(buf)
	require.True(t, ok)
	require.Equal(t, n, got)
	require.NoError(t, s.Err())
	return buf
}

func TestHornGenerator(t *testing.T) {
	buf := streamAll(t, NewHornGenerator(sampleRate), sampleRate.N(50*time.Millisecond))

	assert.Equal(t, 0.0, buf[0][0], "starts silent")
	peak := 0.0
	for _, s := range buf {
		assert.Equal(t, s[0], s[1], "mono")
		peak = math.Max(peak, math.Abs(s[0]))
	}
	assert.Greater(t, peak, 0.05)
	assert.LessOrEqual(t, peak, 1.0)
}

func TestChimeGeneratorDecays(t *testing.T) {
	n := sampleRate.N(chimeDuration)
	buf := streamAll(t, NewChimeGenerator(sampleRate), n)

	peak := func(from, to int) float64 {
		p := 0.0
		for _, s := range buf[from:to] {
			p = math.Max(p, math.Abs(s[0]))
		}
		return p
	}
	quarter := n / 4
	assert.Greater(t, peak(0, quarter), peak(3*quarter, n))
}
