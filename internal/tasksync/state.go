package tasksync

// State is where the engine is in the page lifecycle. Loading leads to
// Ready on success; toggles and the bonus claim bounce through their
// own states and settle back on Ready. Unauthenticated is terminal for
// the page instance, LoadFailed is terminal for the load.
type State int

const (
	StateLoading State = iota
	StateReady
	StateToggling
	StateClaimingBonus
	StateLoadFailed
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateToggling:
		return "toggling"
	case StateClaimingBonus:
		return "claiming_bonus"
	case StateLoadFailed:
		return "load_failed"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Currency names one of the two reward points for award confirmations.
type Currency string

const (
	CurrencyBeans Currency = "beans"
	CurrencyMoons Currency = "moons"
)
