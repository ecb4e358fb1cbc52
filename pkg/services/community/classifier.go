package community

import (
	"strings"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
)

// Marker binds a community name to the substring that identifies its
// counterpart accounts.
type Marker struct {
	Community string
	Pattern   string
}

// DefaultMarkers returns the built-in community list. Order matters:
// classification is first-match-wins, so an account name carrying several
// markers resolves to the earliest one.
func DefaultMarkers() []Marker {
	return []Marker{
		{Community: "Fenix", Pattern: "fenix"},
		{Community: "Wagger", Pattern: "wagger"},
	}
}

// Classifier resolves the community of a transaction from its counterpart
// user name. Markers are injected configuration, not literals baked into
// call sites.
type Classifier struct {
	markers []Marker
}

func NewClassifier(markers []Marker) *Classifier {
	if len(markers) == 0 {
		markers = DefaultMarkers()
	}
	return &Classifier{markers: markers}
}

// Classify pattern-matches the counterpart user against the marker list.
// Unmatched names resolve to the unknown community.
func (c *Classifier) Classify(counterpartUser string) domain.Community {
	name := strings.ToLower(strings.TrimSpace(counterpartUser))
	for _, m := range c.markers {
		if strings.Contains(name, strings.ToLower(m.Pattern)) {
			return domain.Community{Name: m.Community, Known: true}
		}
	}
	return domain.UnknownCommunity()
}
