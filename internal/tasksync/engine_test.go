package tasksync

import (
	"context"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/api"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/daily"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/wallet"
)

type fakeService struct {
	mu sync.Mutex

	today    api.TodayResponse
	todayErr error

	complete     map[string]api.CompleteResponse
	completeErr  error
	completeSeen []string

	bonus      api.BonusResponse
	bonusErr   error
	bonusCalls int

	wallet    api.WalletResponse
	walletErr error
}

func (f *fakeService) Today(ctx context.Context) (api.TodayResponse, error) {
	return f.today, f.todayErr
}

func (f *fakeService) Complete(ctx context.Context, taskID string) (api.CompleteResponse, error) {
	f.mu.Lock()
	f.completeSeen = append(f.completeSeen, taskID)
	f.mu.Unlock()
	if f.completeErr != nil {
		return api.CompleteResponse{}, f.completeErr
	}
	return f.complete[taskID], nil
}

func (f *fakeService) ClaimBonus(ctx context.Context) (api.BonusResponse, error) {
	f.mu.Lock()
	f.bonusCalls++
	f.mu.Unlock()
	if f.bonusErr != nil {
		return api.BonusResponse{}, f.bonusErr
	}
	return f.bonus, nil
}

func (f *fakeService) Wallet(ctx context.Context) (api.WalletResponse, error) {
	return f.wallet, f.walletErr
}

// recordingView captures everything the engine pushes at it.
type recordingView struct {
	mu        sync.Mutex
	renders   []ViewModel
	awards    []struct {
		Currency Currency
		Amount   int
	}
	redirects []string
}

func (v *recordingView) Render(vm ViewModel) {
	v.mu.Lock()
	v.renders = append(v.renders, vm)
	v.mu.Unlock()
}

func (v *recordingView) ShowAward(c Currency, amount int) {
	v.mu.Lock()
	v.awards = append(v.awards, struct {
		Currency Currency
		Amount   int
	}{c, amount})
	v.mu.Unlock()
}

func (v *recordingView) RedirectToLogin(next string) {
	v.mu.Lock()
	v.redirects = append(v.redirects, next)
	v.mu.Unlock()
}

func (v *recordingView) last() ViewModel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renders[len(v.renders)-1]
}

func todaySnapshot() api.TodayResponse {
	return api.TodayResponse{
		Beans:         10,
		Moons:         2,
		MaxDailyBeans: 20,
		Tasks: []api.TaskPayload{
			{ID: "t1", Title: "Water the basil", Beans: 5, Done: true},
			{ID: "t2", Title: "Mist the ferns", Beans: 3},
			{ID: "t3", Title: "Rotate the pothos", Beans: 2},
		},
		AllDoneBonusMoons: 1,
	}
}

func newEngineForTest(svc *fakeService) (*Engine, *daily.Store, *recordingView) {
	store := daily.NewStore()
	view := &recordingView{}
	e := New(svc, store, view, WithLogger(log.New(discard{}, "", 0)))
	return e, store, view
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestFetchToday_PopulatesStore(t *testing.T) {
	svc := &fakeService{today: todaySnapshot()}
	e, store, view := newEngineForTest(svc)

	require.NoError(t, e.FetchToday(context.Background()))

	assert.Equal(t, StateReady, e.State())
	st := store.State()
	require.Len(t, st.Tasks, 3)
	assert.Equal(t, 20, st.MaxDailyBeans)
	assert.Equal(t, wallet.Snapshot{Beans: 10, Moons: 2}, store.Wallet())

	// One of three done: bonus control stays disabled.
	vm := view.last()
	assert.False(t, vm.AllDone)
	assert.False(t, vm.BonusEnabled)
}

func TestFetchToday_AuthFailureRedirects(t *testing.T) {
	svc := &fakeService{todayErr: api.ErrAuthRequired}
	e, _, view := newEngineForTest(svc)

	err := e.FetchToday(context.Background())
	assert.ErrorIs(t, err, api.ErrAuthRequired)
	assert.Equal(t, StateUnauthenticated, e.State())
	require.Len(t, view.redirects, 1)
	assert.Equal(t, "/login?next=/tasks", view.redirects[0])

	// Terminal: a second fetch never reaches the service again.
	svc.todayErr = nil
	assert.ErrorIs(t, e.FetchToday(context.Background()), api.ErrAuthRequired)
	assert.Equal(t, StateUnauthenticated, e.State())
}

func TestFetchToday_FailureShowsInlineError(t *testing.T) {
	svc := &fakeService{todayErr: &api.StatusError{StatusCode: 500, Body: "boom"}}
	e, _, view := newEngineForTest(svc)

	err := e.FetchToday(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateLoadFailed, e.State())
	assert.Equal(t, "Could not load today's tasks.", view.last().ErrorMessage)
	assert.Empty(t, view.redirects)
}

func TestToggleComplete_AppliesServerWallet(t *testing.T) {
	svc := &fakeService{
		today: todaySnapshot(),
		complete: map[string]api.CompleteResponse{
			// Server awards 2, not the task's nominal 3: cap rounding
			// is the server's call.
			"t2": {Beans: 12, Moons: 2, AwardedBeans: 2},
		},
	}
	e, store, view := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	require.NoError(t, e.ToggleComplete(ctx, "t2"))

	got, ok := store.Task("t2")
	require.True(t, ok)
	assert.True(t, got.Done)
	assert.Equal(t, wallet.Snapshot{Beans: 12, Moons: 2}, store.Wallet())
	require.Len(t, view.awards, 1)
	assert.Equal(t, CurrencyBeans, view.awards[0].Currency)
	assert.Equal(t, 2, view.awards[0].Amount)
	assert.Equal(t, StateReady, e.State())
}

func TestToggleComplete_ZeroAwardIsSilent(t *testing.T) {
	svc := &fakeService{
		today: todaySnapshot(),
		complete: map[string]api.CompleteResponse{
			"t2": {Beans: 20, Moons: 2, AwardedBeans: 0},
		},
	}
	e, store, view := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	// Cap reached: no beans granted, but the task is done regardless.
	require.NoError(t, e.ToggleComplete(ctx, "t2"))
	got, _ := store.Task("t2")
	assert.True(t, got.Done)
	assert.Empty(t, view.awards)
}

func TestToggleComplete_FailureReverts(t *testing.T) {
	svc := &fakeService{
		today:       todaySnapshot(),
		completeErr: &api.StatusError{StatusCode: 502, Body: "bad gateway"},
	}
	e, store, view := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))
	before := store.Wallet()

	err := e.ToggleComplete(ctx, "t2")
	require.Error(t, err)

	got, _ := store.Task("t2")
	assert.False(t, got.Done, "displayed state restored to pre-toggle value")
	assert.Equal(t, before, store.Wallet())
	assert.Equal(t, StateReady, e.State(), "control re-enabled")
	assert.False(t, view.last().Tasks[1].Busy)

	// The failed toggle left the UI actionable: the same task can be
	// submitted again.
	svc.completeErr = nil
	svc.complete = map[string]api.CompleteResponse{"t2": {Beans: 13, Moons: 2, AwardedBeans: 3}}
	require.NoError(t, e.ToggleComplete(ctx, "t2"))
	got, _ = store.Task("t2")
	assert.True(t, got.Done)
}

func TestToggleComplete_OptimisticThenConfirmed(t *testing.T) {
	svc := &fakeService{
		today:    todaySnapshot(),
		complete: map[string]api.CompleteResponse{"t2": {Beans: 13, Moons: 2, AwardedBeans: 3}},
	}
	e, _, view := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	require.NoError(t, e.ToggleComplete(ctx, "t2"))

	// A render with the task optimistically done and its control busy
	// happened before the response settled.
	var sawBusy bool
	for _, vm := range view.renders {
		for _, tv := range vm.Tasks {
			if tv.ID == "t2" && tv.Busy && tv.Done {
				sawBusy = true
			}
		}
	}
	assert.True(t, sawBusy)
}

func TestToggleComplete_AuthFailureRedirects(t *testing.T) {
	svc := &fakeService{today: todaySnapshot(), completeErr: api.ErrAuthRequired}
	e, _, view := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	err := e.ToggleComplete(ctx, "t2")
	assert.ErrorIs(t, err, api.ErrAuthRequired)
	assert.Equal(t, StateUnauthenticated, e.State())
	assert.Equal(t, []string{"/login?next=/tasks"}, view.redirects)
}

func TestToggleComplete_GuardsReentry(t *testing.T) {
	svc := &fakeService{today: todaySnapshot()}
	e, _, _ := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	// Already-done task: control is not actionable, drop silently.
	require.NoError(t, e.ToggleComplete(ctx, "t1"))
	assert.Empty(t, svc.completeSeen)

	assert.ErrorIs(t, e.ToggleComplete(ctx, "missing"), ErrTaskUnknown)
}

func TestToggleLastTask_EnablesBonus(t *testing.T) {
	snap := todaySnapshot()
	snap.Tasks[1].Done = true // only t3 remains
	svc := &fakeService{
		today:    snap,
		complete: map[string]api.CompleteResponse{"t3": {Beans: 15, Moons: 2, AwardedBeans: 2}},
	}
	e, store, view := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))
	assert.False(t, view.last().BonusEnabled)

	require.NoError(t, e.ToggleComplete(ctx, "t3"))

	// The locally recomputed gate flips within the same update that
	// follows the response; no second fetch needed.
	assert.True(t, store.AllDone())
	vm := view.last()
	assert.True(t, vm.AllDone)
	assert.True(t, vm.BonusEnabled)
}

func TestClaimBonus_Success(t *testing.T) {
	snap := todaySnapshot()
	for i := range snap.Tasks {
		snap.Tasks[i].Done = true
	}
	snap.AllDone = true
	svc := &fakeService{
		today: snap,
		bonus: api.BonusResponse{Beans: 20, Moons: 3, AwardedMoons: 1},
	}
	e, store, view := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	require.NoError(t, e.ClaimBonus(ctx))

	assert.Equal(t, wallet.Snapshot{Beans: 20, Moons: 3}, store.Wallet())
	require.Len(t, view.awards, 1)
	assert.Equal(t, CurrencyMoons, view.awards[0].Currency)
	assert.False(t, view.last().BonusEnabled, "claimed bonus stays disabled")

	// A second claim never reaches the service.
	require.NoError(t, e.ClaimBonus(ctx))
	assert.Equal(t, 1, svc.bonusCalls)
}

func TestClaimBonus_DisabledUntilAllDone(t *testing.T) {
	svc := &fakeService{today: todaySnapshot()}
	e, _, _ := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	require.NoError(t, e.ClaimBonus(ctx))
	assert.Zero(t, svc.bonusCalls)
}

func TestClaimBonus_FailureStaysDisabled(t *testing.T) {
	snap := todaySnapshot()
	for i := range snap.Tasks {
		snap.Tasks[i].Done = true
	}
	snap.AllDone = true
	svc := &fakeService{
		today:    snap,
		bonusErr: &api.StatusError{StatusCode: 409, Body: "already claimed"},
	}
	e, _, view := newEngineForTest(svc)
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	require.Error(t, e.ClaimBonus(ctx))
	assert.False(t, view.last().BonusEnabled)
	assert.Equal(t, StateReady, e.State())

	// "Failed" and "already claimed" are indistinguishable; either
	// way the control never re-arms.
	require.NoError(t, e.ClaimBonus(ctx))
	assert.Equal(t, 1, svc.bonusCalls)
}

func TestClaimBonus_AtMostOneRequestInFlight(t *testing.T) {
	snap := todaySnapshot()
	for i := range snap.Tasks {
		snap.Tasks[i].Done = true
	}
	snap.AllDone = true

	release := make(chan struct{})
	svc := &blockingBonusService{
		fakeService: fakeService{
			today: snap,
			bonus: api.BonusResponse{Beans: 20, Moons: 3, AwardedMoons: 1},
		},
		release: release,
		entered: make(chan struct{}),
	}
	e := New(svc, daily.NewStore(), &recordingView{}, WithLogger(log.New(discard{}, "", 0)))
	ctx := context.Background()
	require.NoError(t, e.FetchToday(ctx))

	done := make(chan struct{})
	go func() {
		_ = e.ClaimBonus(ctx)
		close(done)
	}()
	<-svc.entered

	// Second submission while the first is in flight finds the
	// control disabled.
	require.NoError(t, e.ClaimBonus(ctx))
	close(release)
	<-done

	assert.Equal(t, 1, svc.bonusCalls)
}

type blockingBonusService struct {
	fakeService
	release <-chan struct{}
	entered chan struct{}
}

func (s *blockingBonusService) ClaimBonus(ctx context.Context) (api.BonusResponse, error) {
	resp, err := s.fakeService.ClaimBonus(ctx)
	close(s.entered)
	<-s.release
	return resp, err
}

func TestRefreshWallet(t *testing.T) {
	svc := &fakeService{wallet: api.WalletResponse{Beans: 9, Moons: 1, Username: "nway"}}
	e, store, view := newEngineForTest(svc)

	e.RefreshWallet(context.Background())
	assert.Equal(t, wallet.Snapshot{Beans: 9, Moons: 1}, store.Wallet())
	assert.Equal(t, "nway", view.last().Username)
}

func TestRefreshWallet_FailureIsSilent(t *testing.T) {
	svc := &fakeService{walletErr: errors.New("timeout")}
	e, store, view := newEngineForTest(svc)
	store.ApplyWallet(wallet.Snapshot{Beans: 4, Moons: 1})

	e.RefreshWallet(context.Background())
	assert.Equal(t, wallet.Snapshot{Beans: 4, Moons: 1}, store.Wallet())
	assert.Empty(t, view.redirects)
}
