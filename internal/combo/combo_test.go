package combo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typetycoon/internal/multiplier"
)

var tiers = []multiplier.Tier{
	{SpeedThreshold: 80, Multiplier: 5},
	{SpeedThreshold: 40, Multiplier: 3},
}

func TestNoTiersStaysInactive(t *testing.T) {
	m := New(MaxResetCounter)
	m.OnCorrect(nil, 200)
	assert.False(t, m.State().Active)
	assert.Equal(t, 1.0, m.Multiplier())
}

func TestSelectsMostGenerousTier(t *testing.T) {
	m := New(MaxResetCounter)

	m.OnCorrect(tiers, 50)
	require.True(t, m.State().Active)
	assert.Equal(t, 3.0, m.Multiplier())

	m.OnCorrect(tiers, 90)
	assert.Equal(t, 5.0, m.Multiplier())

	m.OnCorrect(tiers, 10)
	assert.False(t, m.State().Active)
	assert.Equal(t, 1.0, m.State().Multiplier)
}

func TestBreakRequiresTwentyCorrectKeystrokes(t *testing.T) {
	m := New(MaxResetCounter)
	m.OnCorrect(tiers, 100)
	require.True(t, m.State().Active)

	assert.True(t, m.OnBreak())
	assert.False(t, m.State().Active)
	assert.Equal(t, 0, m.State().ResetCounter)

	for i := 1; i < MaxResetCounter; i++ {
		m.OnCorrect(tiers, 100)
		assert.Falsef(t, m.State().Active, "active after %d keystrokes", i)
		assert.Equal(t, i, m.State().ResetCounter)
	}
	m.OnCorrect(tiers, 100)
	assert.True(t, m.State().Active)
	assert.Equal(t, MaxResetCounter, m.State().ResetCounter)

	m.OnCorrect(tiers, 100)
	assert.Equal(t, MaxResetCounter, m.State().ResetCounter, "counter is capped")
}

func TestNoBreakIgnoresMistakes(t *testing.T) {
	m := New(MaxResetCounter)
	m.SetNoBreak(true)
	m.OnCorrect(tiers, 60)
	require.Equal(t, 3.0, m.Multiplier())

	assert.False(t, m.OnBreak())
	state := m.State()
	assert.True(t, state.Active)
	assert.Equal(t, 3.0, state.Multiplier)
	assert.Equal(t, MaxResetCounter, state.ResetCounter)
}

func TestInitialResetCounterIsClamped(t *testing.T) {
	assert.Equal(t, 0, New(-5).State().ResetCounter)
	assert.Equal(t, MaxResetCounter, New(100).State().ResetCounter)

	m := New(0)
	m.OnCorrect(tiers, 100)
	assert.False(t, m.State().Active)
}
