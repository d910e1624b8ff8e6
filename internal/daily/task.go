package daily

// Task is one entry in today's list. Tasks are created server-side per
// day; the client only ever flips Done, and the server stays
// authoritative on double submits.
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Beans int    `json:"beans"`
	Done  bool   `json:"done"`
}

// State is the whole of today's view: the ordered task list, the
// display-only daily bean cap, and the all-done bonus gate.
type State struct {
	Tasks             []Task
	MaxDailyBeans     int
	AllDone           bool
	AllDoneBonusMoons int
}

func allDone(tasks []Task) bool {
	for _, t := range tasks {
		if !t.Done {
			return false
		}
	}
	return true
}
