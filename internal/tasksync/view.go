package tasksync

import (
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/daily"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/wallet"
)

// TaskView is a task plus the state of its control. Busy means a
// toggle for it is in flight and its control is disabled.
type TaskView struct {
	daily.Task
	Busy bool
}

// ViewModel is everything a rendering surface needs to draw the page.
// The engine pushes a fresh one on every transition.
type ViewModel struct {
	State         State
	Tasks         []TaskView
	Wallet        wallet.Snapshot
	Username      string
	MaxDailyBeans int
	BonusMoons    int
	AllDone       bool
	BonusEnabled  bool
	ErrorMessage  string // inline message for a failed initial load
}

// View is the rendering surface the engine drives. Implementations
// never mutate engine state; they only draw what they are given, which
// keeps the state machine testable without a browser.
type View interface {
	Render(vm ViewModel)
	// ShowAward surfaces a transient confirmation for a positive
	// award. Zero awards are never shown.
	ShowAward(c Currency, amount int)
	// RedirectToLogin sends the user to the login flow with a return
	// path. Terminal for the page instance.
	RedirectToLogin(next string)
}
