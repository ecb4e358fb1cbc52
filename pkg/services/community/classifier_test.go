package community

import (
	"testing"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultMarkers())

	t.Run("matches marker substring case-insensitively", func(t *testing.T) {
		got := c.Classify("FENIX_cajero3")
		assert.Equal(t, domain.Community{Name: "Fenix", Known: true}, got)
	})

	t.Run("ambiguous names resolve to the first checked marker", func(t *testing.T) {
		got := c.Classify("Fenix_Wagger50")
		assert.Equal(t, "Fenix", got.Name)
	})

	t.Run("unmatched names are unknown", func(t *testing.T) {
		got := c.Classify("random_user_9")
		assert.False(t, got.Known)
		assert.Equal(t, domain.UnknownCommunityName, got.Name)
	})

	t.Run("custom marker order is honored", func(t *testing.T) {
		custom := NewClassifier([]Marker{
			{Community: "Wagger", Pattern: "wagger"},
			{Community: "Fenix", Pattern: "fenix"},
		})
		got := custom.Classify("Fenix_Wagger50")
		assert.Equal(t, "Wagger", got.Name)
	})
}
