package plant

import (
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/phase"
)

// Filter narrows the catalog by edibility. The zero value keeps
// everything.
type Filter string

const (
	FilterAll        Filter = ""
	FilterEdible     Filter = "Edible"
	FilterOrnamental Filter = "Ornamental"
)

// Buckets are the three recommendation lists for a phase, in catalog
// order.
type Buckets struct {
	Grow    []string
	Harvest []string
	Rest    []string
}

// Empty reports whether no plant matched the phase at all.
func (b Buckets) Empty() bool {
	return len(b.Grow) == 0 && len(b.Harvest) == 0 && len(b.Rest) == 0
}

// Bucket partitions the catalog for one phase. Each of a plant's three
// phase fields is tested independently, so a plant whose growing and
// resting labels both match lands in both lists; the catalog is
// authored that way.
func Bucket(plants []Plant, phaseLabel string, filter Filter) Buckets {
	key := phase.Normalize(phaseLabel)

	var b Buckets
	for _, p := range plants {
		if filter == FilterEdible && !p.Edible {
			continue
		}
		if filter == FilterOrnamental && p.Edible {
			continue
		}

		name := p.DisplayName()
		mp := p.MoonPhase

		if mp.Growing != "" && phase.Normalize(mp.Growing) == key {
			b.Grow = append(b.Grow, name)
		}
		if mp.Harvesting != "" && phase.Normalize(mp.Harvesting) == key {
			b.Harvest = append(b.Harvest, name)
		}
		if mp.Resting != "" && phase.Normalize(mp.Resting) == key {
			b.Rest = append(b.Rest, name)
		}
	}
	return b
}
