package daily

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/wallet"
)

func threeTasks() State {
	return State{
		Tasks: []Task{
			{ID: "t1", Title: "Water the basil", Beans: 5, Done: true},
			{ID: "t2", Title: "Mist the ferns", Beans: 3},
			{ID: "t3", Title: "Rotate the pothos", Beans: 2},
		},
		MaxDailyBeans:     20,
		AllDoneBonusMoons: 1,
	}
}

func TestStore_Replace(t *testing.T) {
	s := NewStore()
	s.Replace(threeTasks())

	st := s.State()
	require.Len(t, st.Tasks, 3)
	assert.Equal(t, 20, st.MaxDailyBeans)
	assert.False(t, st.AllDone)
}

func TestStore_ReplaceKeepsServerAllDone(t *testing.T) {
	s := NewStore()
	s.Replace(State{
		Tasks:   []Task{{ID: "t1", Done: true}},
		AllDone: true,
	})
	assert.True(t, s.AllDone())
}

func TestStore_SetDoneRecomputesAllDone(t *testing.T) {
	s := NewStore()
	s.Replace(threeTasks())

	prev, ok := s.SetDone("t2", true)
	require.True(t, ok)
	assert.False(t, prev)
	assert.False(t, s.AllDone())

	s.MarkDone("t3")
	assert.True(t, s.AllDone())

	// Reverting one clears the gate again.
	s.SetDone("t3", false)
	assert.False(t, s.AllDone())
}

func TestStore_SetDoneUnknownTask(t *testing.T) {
	s := NewStore()
	s.Replace(threeTasks())

	_, ok := s.SetDone("nope", true)
	assert.False(t, ok)
}

func TestStore_StateIsACopy(t *testing.T) {
	s := NewStore()
	s.Replace(threeTasks())

	st := s.State()
	st.Tasks[1].Done = true

	got, ok := s.Task("t2")
	require.True(t, ok)
	assert.False(t, got.Done)
}

func TestStore_ApplyWallet(t *testing.T) {
	s := NewStore()
	s.ApplyWallet(wallet.Snapshot{Beans: 42, Moons: 3})
	assert.Equal(t, wallet.Snapshot{Beans: 42, Moons: 3}, s.Wallet())

	// Each server snapshot overwrites the last, never accumulates.
	s.ApplyWallet(wallet.Snapshot{Beans: 40, Moons: 3})
	assert.Equal(t, wallet.Snapshot{Beans: 40, Moons: 3}, s.Wallet())
}
