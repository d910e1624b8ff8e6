package api

import (
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/daily"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/wallet"
)

// Service payloads are decoded into explicit structs and normalized
// once at this boundary; readers never see a missing or negative
// field.

// TaskPayload is one task in the today snapshot.
type TaskPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Beans int    `json:"beans"`
	Done  bool   `json:"done"`
}

// TodayResponse is the GET /api/tasks/today reply.
type TodayResponse struct {
	Beans             int           `json:"beans"`
	Moons             int           `json:"moons"`
	MaxDailyBeans     int           `json:"max_daily_beans"`
	Tasks             []TaskPayload `json:"tasks"`
	AllDone           bool          `json:"all_done"`
	AllDoneBonusMoons int           `json:"all_done_bonus_moons"`
}

func (r *TodayResponse) normalize() {
	clampNonNegative(&r.Beans, &r.Moons, &r.MaxDailyBeans, &r.AllDoneBonusMoons)
	for i := range r.Tasks {
		if r.Tasks[i].Title == "" {
			r.Tasks[i].Title = "Untitled task"
		}
		clampNonNegative(&r.Tasks[i].Beans)
	}
}

// Wallet extracts the server-confirmed balances.
func (r TodayResponse) Wallet() wallet.Snapshot {
	return wallet.Snapshot{Beans: r.Beans, Moons: r.Moons}
}

// State converts the snapshot into store form.
func (r TodayResponse) State() daily.State {
	tasks := make([]daily.Task, len(r.Tasks))
	for i, t := range r.Tasks {
		tasks[i] = daily.Task{ID: t.ID, Title: t.Title, Beans: t.Beans, Done: t.Done}
	}
	return daily.State{
		Tasks:             tasks,
		MaxDailyBeans:     r.MaxDailyBeans,
		AllDone:           r.AllDone,
		AllDoneBonusMoons: r.AllDoneBonusMoons,
	}
}

// CompleteResponse is the POST /api/tasks/complete reply. AwardedBeans
// may legitimately be zero when the daily cap is already reached.
type CompleteResponse struct {
	Beans        int `json:"beans"`
	Moons        int `json:"moons"`
	AwardedBeans int `json:"awarded_beans"`
}

func (r *CompleteResponse) normalize() {
	clampNonNegative(&r.Beans, &r.Moons, &r.AwardedBeans)
}

func (r CompleteResponse) Wallet() wallet.Snapshot {
	return wallet.Snapshot{Beans: r.Beans, Moons: r.Moons}
}

// BonusResponse is the POST /api/tasks/claim_all_done_bonus reply.
type BonusResponse struct {
	Beans        int `json:"beans"`
	Moons        int `json:"moons"`
	AwardedMoons int `json:"awarded_moons"`
}

func (r *BonusResponse) normalize() {
	clampNonNegative(&r.Beans, &r.Moons, &r.AwardedMoons)
}

func (r BonusResponse) Wallet() wallet.Snapshot {
	return wallet.Snapshot{Beans: r.Beans, Moons: r.Moons}
}

// WalletResponse is the GET /api/wallet reply used by the header chip.
type WalletResponse struct {
	Beans    int    `json:"beans"`
	Moons    int    `json:"moons"`
	Username string `json:"username,omitempty"`
}

func (r *WalletResponse) normalize() {
	clampNonNegative(&r.Beans, &r.Moons)
}

func (r WalletResponse) Wallet() wallet.Snapshot {
	return wallet.Snapshot{Beans: r.Beans, Moons: r.Moons}
}

func clampNonNegative(vals ...*int) {
	for _, v := range vals {
		if *v < 0 {
			*v = 0
		}
	}
}
