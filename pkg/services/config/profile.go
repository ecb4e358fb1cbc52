package config

import (
	"fmt"

	"github.com/cp-tools/casino-atlas/pkg/services/community"
	"github.com/cp-tools/casino-atlas/pkg/services/vip"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Profile is the operator-editable configuration for a report deployment:
// community markers, VIP cut-offs, and catalog file locations.
type Profile struct {
	Communities []CommunityMarker `mapstructure:"communities"`
	VIP         VIPSettings       `mapstructure:"vip"`
	Catalog     CatalogPaths      `mapstructure:"catalog"`
	TopCount    int               `mapstructure:"top_count"`
}

type CommunityMarker struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
}

type VIPSettings struct {
	EliteAmount     float64 `mapstructure:"elite_amount"`
	EliteCount      int     `mapstructure:"elite_count"`
	HighAmount      float64 `mapstructure:"high_amount"`
	MidAmount       float64 `mapstructure:"mid_amount"`
	CandidateAmount float64 `mapstructure:"candidate_amount"`
	CandidateCount  int     `mapstructure:"candidate_count"`
}

type CatalogPaths struct {
	Offers string `mapstructure:"offers"`
	Roster string `mapstructure:"roster"`
}

// LoadProfile reads a profile file from the given path. Missing values
// fall back to operating defaults.
func LoadProfile(profilePath string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	profile := DefaultProfile()
	if err := v.Unmarshal(profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return profile, nil
}

// DefaultProfile returns the built-in markers and thresholds.
func DefaultProfile() *Profile {
	th := vip.DefaultThresholds()
	var markers []CommunityMarker
	for _, m := range community.DefaultMarkers() {
		markers = append(markers, CommunityMarker{Name: m.Community, Pattern: m.Pattern})
	}
	return &Profile{
		Communities: markers,
		VIP: VIPSettings{
			EliteAmount:     th.EliteAmount.InexactFloat64(),
			EliteCount:      th.EliteCount,
			HighAmount:      th.HighAmount.InexactFloat64(),
			MidAmount:       th.MidAmount.InexactFloat64(),
			CandidateAmount: th.CandidateAmount.InexactFloat64(),
			CandidateCount:  th.CandidateCount,
		},
		TopCount: 10,
	}
}

// Markers converts the profile's community section for the classifier.
func (p *Profile) Markers() []community.Marker {
	markers := make([]community.Marker, 0, len(p.Communities))
	for _, m := range p.Communities {
		markers = append(markers, community.Marker{Community: m.Name, Pattern: m.Pattern})
	}
	return markers
}

// Thresholds converts the profile's VIP section for the classifier.
func (p *Profile) Thresholds() vip.Thresholds {
	return vip.Thresholds{
		EliteAmount:     decimal.NewFromFloat(p.VIP.EliteAmount),
		EliteCount:      p.VIP.EliteCount,
		HighAmount:      decimal.NewFromFloat(p.VIP.HighAmount),
		MidAmount:       decimal.NewFromFloat(p.VIP.MidAmount),
		CandidateAmount: decimal.NewFromFloat(p.VIP.CandidateAmount),
		CandidateCount:  p.VIP.CandidateCount,
	}
}
