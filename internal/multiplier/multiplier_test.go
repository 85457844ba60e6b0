package multiplier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/typetycoon/internal/upgrade"
)

func TestResolveEmpty(t *testing.T) {
	l := Resolve(upgrade.Default(), upgrade.NewSet())
	assert.Equal(t, Neutral(), l)
}

func TestResolveLaterCatalogEntriesWin(t *testing.T) {
	l := Resolve(upgrade.Default(), upgrade.NewSet(1, 2, 3, 4, 5, 10))
	assert.Equal(t, Multipliers{Base: 20, Vowel: 5, Consonant: 5}, l.Multipliers)
	assert.Empty(t, l.Tiers)
	assert.False(t, l.NoBreak)
}

func TestResolveIsOrderIndependent(t *testing.T) {
	c := upgrade.Default()
	a := upgrade.Set{}
	for _, id := range []int{8, 1, 6, 9, 3, 7} {
		a.Add(id)
	}
	b := upgrade.Set{}
	for _, id := range []int{7, 3, 9, 6, 1, 8} {
		b.Add(id)
	}
	assert.Equal(t, Resolve(c, a), Resolve(c, b))
}

func TestResolveTiersSortedByMultiplier(t *testing.T) {
	l := Resolve(upgrade.Default(), upgrade.NewSet(6, 7, 8, 9))
	assert.Equal(t, []Tier{
		{SpeedThreshold: 80, Multiplier: 5},
		{SpeedThreshold: 40, Multiplier: 3},
		{SpeedThreshold: 60, Multiplier: 3},
	}, l.Tiers)
	assert.True(t, l.NoBreak)
}

func TestKeyMultiplier(t *testing.T) {
	m := Multipliers{Base: 1, Vowel: 3, Consonant: 5}
	assert.Equal(t, 3.0, m.KeyMultiplier('a'))
	assert.Equal(t, 3.0, m.KeyMultiplier('E'))
	assert.Equal(t, 5.0, m.KeyMultiplier('y'))
	assert.Equal(t, 5.0, m.KeyMultiplier('Z'))
	assert.Equal(t, 1.0, m.KeyMultiplier(' '))
	assert.Equal(t, 1.0, m.KeyMultiplier('7'))
	assert.Equal(t, 1.0, m.KeyMultiplier('é'))
}
