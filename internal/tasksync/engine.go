package tasksync

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/api"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/daily"
)

// ErrTaskUnknown is returned when a toggle names a task that is not in
// today's list.
var ErrTaskUnknown = errors.New("unknown task")

// Service is the slice of the remote API the engine drives.
type Service interface {
	Today(ctx context.Context) (api.TodayResponse, error)
	Complete(ctx context.Context, taskID string) (api.CompleteResponse, error)
	ClaimBonus(ctx context.Context) (api.BonusResponse, error)
	Wallet(ctx context.Context) (api.WalletResponse, error)
}

// Engine orchestrates the daily task page against the remote service:
// it fetches the today snapshot, applies optimistic toggles and
// reverts them when the round trip fails, keeps the wallet pinned to
// server-confirmed values, and gates the one-time all-done bonus.
//
// Concurrency follows the page's model: there is one logical actor,
// and mutual exclusion is per control. A task mid-toggle drops
// re-entrant toggles for that task; the bonus control disables itself
// for the duration of its round trip and stays disabled after any
// settled claim attempt.
type Engine struct {
	svc    Service
	store  *daily.Store
	view   View
	logger *log.Logger

	loginPath  string
	returnPath string

	mu         sync.Mutex
	state      State
	inflight   map[string]bool // task ids mid-toggle
	toggles    int
	bonusBusy  bool
	bonusSpent bool
	username   string
	loadErr    string
}

type Option func(*Engine)

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLoginRedirect overrides where an unauthenticated session is sent
// and the return path it carries.
func WithLoginRedirect(loginPath, returnPath string) Option {
	return func(e *Engine) {
		e.loginPath = loginPath
		e.returnPath = returnPath
	}
}

func New(svc Service, store *daily.Store, view View, opts ...Option) *Engine {
	e := &Engine{
		svc:        svc,
		store:      store,
		view:       view,
		logger:     log.Default(),
		loginPath:  "/login",
		returnPath: "/tasks",
		state:      StateLoading,
		inflight:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FetchToday loads the day's snapshot and replaces the store
// wholesale. An auth failure redirects to login and ends this page
// instance; any other failure leaves an inline error and is not
// retried.
func (e *Engine) FetchToday(ctx context.Context) error {
	e.mu.Lock()
	if e.state == StateUnauthenticated {
		e.mu.Unlock()
		return api.ErrAuthRequired
	}
	e.state = StateLoading
	e.loadErr = ""
	e.mu.Unlock()
	e.render()

	resp, err := e.svc.Today(ctx)
	if err != nil {
		if errors.Is(err, api.ErrAuthRequired) {
			e.unauthenticated()
			return err
		}
		e.logger.Printf("[sync] fetch today: %v", err)
		e.mu.Lock()
		e.state = StateLoadFailed
		e.loadErr = "Could not load today's tasks."
		e.mu.Unlock()
		e.render()
		return err
	}

	e.store.Replace(resp.State())
	e.store.ApplyWallet(resp.Wallet())

	e.mu.Lock()
	e.state = StateReady
	e.mu.Unlock()
	e.render()
	return nil
}

// ToggleComplete optimistically marks a task done, confirms with the
// service, and reverts if the round trip fails. The wallet always
// takes the server's numbers, never a locally computed delta. A task
// already mid-toggle or already done is dropped silently; that is the
// control being disabled.
func (e *Engine) ToggleComplete(ctx context.Context, taskID string) error {
	e.mu.Lock()
	if e.state != StateReady && e.state != StateToggling {
		e.mu.Unlock()
		return nil
	}
	if e.inflight[taskID] {
		e.mu.Unlock()
		return nil
	}
	t, ok := e.store.Task(taskID)
	if !ok {
		e.mu.Unlock()
		return ErrTaskUnknown
	}
	if t.Done {
		e.mu.Unlock()
		return nil
	}
	e.inflight[taskID] = true
	e.toggles++
	e.state = StateToggling
	e.mu.Unlock()

	// The control re-enables on every exit path, success or not.
	defer func() {
		e.mu.Lock()
		delete(e.inflight, taskID)
		e.toggles--
		if e.toggles == 0 && e.state == StateToggling {
			e.state = StateReady
		}
		e.mu.Unlock()
		e.render()
	}()

	prev, _ := e.store.SetDone(taskID, true) // optimistic
	e.render()

	resp, err := e.svc.Complete(ctx, taskID)
	if err != nil {
		if errors.Is(err, api.ErrAuthRequired) {
			e.unauthenticated()
			return err
		}
		// Never assume an optimistic success survived a failed round
		// trip.
		e.store.SetDone(taskID, prev)
		e.logger.Printf("[sync] complete %s failed, reverting: %v", taskID, err)
		return err
	}

	e.store.ApplyWallet(resp.Wallet())
	e.store.MarkDone(taskID)
	if resp.AwardedBeans > 0 {
		e.view.ShowAward(CurrencyBeans, resp.AwardedBeans)
	}
	return nil
}

// ClaimBonus requests the all-done bonus. The control disables itself
// on entry and stays disabled after any settled attempt: success means
// claimed, and a failure is indistinguishable from already-claimed, so
// disabled is the right terminal state either way.
func (e *Engine) ClaimBonus(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateReady || e.bonusBusy || e.bonusSpent || !e.store.AllDone() {
		e.mu.Unlock()
		return nil
	}
	e.bonusBusy = true
	e.state = StateClaimingBonus
	e.mu.Unlock()
	e.render()

	resp, err := e.svc.ClaimBonus(ctx)

	e.mu.Lock()
	e.bonusBusy = false
	e.bonusSpent = true
	if e.state == StateClaimingBonus {
		e.state = StateReady
	}
	e.mu.Unlock()

	if err != nil {
		if errors.Is(err, api.ErrAuthRequired) {
			e.unauthenticated()
			return err
		}
		e.logger.Printf("[sync] claim bonus: %v", err)
		e.render()
		return err
	}

	e.store.ApplyWallet(resp.Wallet())
	e.render()
	if resp.AwardedMoons > 0 {
		e.view.ShowAward(CurrencyMoons, resp.AwardedMoons)
	}
	return nil
}

// RefreshWallet repaints the header balances. Failure of any kind is
// non-fatal and the header keeps its last values.
func (e *Engine) RefreshWallet(ctx context.Context) {
	resp, err := e.svc.Wallet(ctx)
	if err != nil {
		e.logger.Printf("[sync] wallet refresh: %v", err)
		return
	}
	e.mu.Lock()
	e.username = resp.Username
	e.mu.Unlock()
	e.store.ApplyWallet(resp.Wallet())
	e.render()
}

// State reports the engine's lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot assembles the current view model, the same one pushed to
// the view on every transition.
func (e *Engine) Snapshot() ViewModel {
	st := e.store.State()
	w := e.store.Wallet()

	e.mu.Lock()
	defer e.mu.Unlock()

	tasks := make([]TaskView, len(st.Tasks))
	for i, t := range st.Tasks {
		tasks[i] = TaskView{Task: t, Busy: e.inflight[t.ID]}
	}
	return ViewModel{
		State:         e.state,
		Tasks:         tasks,
		Wallet:        w,
		Username:      e.username,
		MaxDailyBeans: st.MaxDailyBeans,
		BonusMoons:    st.AllDoneBonusMoons,
		AllDone:       st.AllDone,
		BonusEnabled:  e.state == StateReady && st.AllDone && !e.bonusBusy && !e.bonusSpent,
		ErrorMessage:  e.loadErr,
	}
}

func (e *Engine) render() {
	e.view.Render(e.Snapshot())
}

func (e *Engine) unauthenticated() {
	e.mu.Lock()
	e.state = StateUnauthenticated
	e.mu.Unlock()
	e.view.RedirectToLogin(e.loginPath + "?next=" + e.returnPath)
	e.render()
}
