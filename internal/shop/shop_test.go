package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typetycoon/internal/session"
	"github.com/verte-zerg/typetycoon/internal/upgrade"
)

type fakeWallet struct {
	score     int
	purchased upgrade.Set
}

func (w *fakeWallet) Score() int { return w.score }

func (w *fakeWallet) AdjustScore(delta int) {
	w.score += delta
	if w.score < 0 {
		w.score = 0
	}
}

func (w *fakeWallet) ApplyPurchases(p upgrade.Set) { w.purchased = p.Clone() }

func TestBuyDeductsAndApplies(t *testing.T) {
	s := New(upgrade.Default())
	w := &fakeWallet{score: 70}

	u, err := s.Buy(w, 1, 12*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Vowel Power", u.Name)
	assert.Equal(t, 20, w.score)
	assert.True(t, w.purchased.Has(1))
	assert.Equal(t, []Record{{UpgradeID: 1, Cost: 50, ElapsedSeconds: 12}}, s.History())
}

func TestBuyFailures(t *testing.T) {
	s := New(upgrade.Default())
	w := &fakeWallet{score: 1_000_000}

	_, err := s.Buy(w, 404, 0)
	assert.ErrorIs(t, err, ErrUnknownUpgrade)

	_, err = s.Buy(w, 2, 0)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = s.Buy(w, 1, 0)
	require.NoError(t, err)
	_, err = s.Buy(w, 1, 0)
	assert.ErrorIs(t, err, ErrAlreadyOwned)

	poor := &fakeWallet{score: 10}
	_, err = s.Buy(poor, 2, 0)
	assert.ErrorIs(t, err, ErrInsufficientScore)
	assert.Equal(t, 10, poor.score)
	assert.Nil(t, poor.purchased)
}

func TestUpgradeSixLockedUntilAllPrerequisites(t *testing.T) {
	s := New(upgrade.Default())
	w := &fakeWallet{score: 10_000_000}

	for _, id := range []int{1, 2, 3, 4} {
		_, err := s.Buy(w, id, 0)
		require.NoError(t, err)
		assert.ErrorIs(t, s.Check(6, w.score), ErrLocked)
	}
	_, err := s.Buy(w, 5, 0)
	require.NoError(t, err)
	assert.NoError(t, s.Check(6, w.score))
}

func TestItemsStatus(t *testing.T) {
	s := New(upgrade.Default())
	w := &fakeWallet{score: 100}
	_, err := s.Buy(w, 1, 0)
	require.NoError(t, err)

	byID := map[int]Item{}
	for _, item := range s.Items(w.score) {
		byID[item.Upgrade.ID] = item
	}
	assert.Equal(t, StatusOwned, byID[1].Status)
	assert.Equal(t, StatusTooExpensive, byID[2].Status)
	assert.Equal(t, StatusLocked, byID[6].Status)
	assert.Equal(t, []string{"Keyboard Upgrade I", "Vowel Mastery", "Consonant Mastery"}, byID[6].Prerequisites)

	items := s.Items(1_000)
	assert.Equal(t, StatusAffordable, items[1].Status)
}

func TestBuyWithSession(t *testing.T) {
	sess := session.New("aaaa", session.Options{TargetScore: 1000})
	sess.Start()
	sess.AdjustScore(60)

	s := New(upgrade.Default())
	_, err := s.Buy(sess, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, sess.Score())
	assert.Equal(t, 3, sess.HandleKey("a").Points)
}
