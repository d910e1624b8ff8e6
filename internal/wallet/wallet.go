package wallet

// Snapshot is the server-confirmed pair of reward balances. The client
// never computes these locally; every response that carries them
// overwrites the cached copy, so the display can not drift from the
// server's caps and rounding.
type Snapshot struct {
	Beans int `json:"beans"`
	Moons int `json:"moons"`
}
