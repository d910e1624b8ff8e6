package plant

// MoonPhase holds the free-text phase labels a catalog entry is
// authored with. Any field may be empty.
type MoonPhase struct {
	Growing    string `json:"growing,omitempty"`
	Harvesting string `json:"harvesting,omitempty"`
	Resting    string `json:"resting,omitempty"`
}

// Plant is one read-only catalog entry. The catalog is authored by
// hand, so decoding tolerates missing fields rather than rejecting
// them.
type Plant struct {
	Plant     string    `json:"plant,omitempty"`
	Name      string    `json:"name,omitempty"`
	Edible    bool      `json:"edible"`
	MoonPhase MoonPhase `json:"moon_phase"`
}

// DisplayName falls back through the two name fields the catalog has
// used over time, so a malformed entry never breaks rendering.
func (p Plant) DisplayName() string {
	if p.Plant != "" {
		return p.Plant
	}
	if p.Name != "" {
		return p.Name
	}
	return "Unknown plant"
}
