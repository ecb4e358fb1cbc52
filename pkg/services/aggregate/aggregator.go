package aggregate

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Options configure one aggregation pass.
type Options struct {
	// Roster lists the known VIP players (already lower-cased). Roster
	// members absent from the input still get a zero-activity summary so
	// the final table always carries the full membership.
	Roster []string
	// Now anchors days-since-last-activity. Zero means time.Now().
	Now time.Time
}

// playerStats accumulates one player's rollup while iterating the batch.
type playerStats struct {
	displayName    string
	community      domain.Community
	total          decimal.Decimal
	depositCount   int
	platformTotals map[string]decimal.Decimal
	last           time.Time
	hasActivity    bool
	bandCounts     [4]int
	bandFirstSeen  [4]int
	hourCounts     [24]int
	hourFirstSeen  [24]int
	label          string
}

// Aggregate groups annotated transactions by player and rolls them up into
// summaries. Ties in dominant band and peak hour resolve to the first
// encountered in input order; that is an ordering dependency of the input,
// not randomness. Totals are idempotent: the same batch always yields the
// same sums.
func Aggregate(
	ctx context.Context,
	txs []domain.Transaction,
	participations []domain.Participation,
	opts Options,
) []domain.PlayerSummary {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	partByTx := make(map[string]domain.Participation, len(participations))
	for _, p := range participations {
		partByTx[p.TransactionID] = p
	}

	stats := make(map[string]*playerStats)
	seen := 0

	for _, tx := range txs {
		key := playerKey(tx.Player)
		if key == "" {
			continue
		}

		ps, ok := stats[key]
		if !ok {
			ps = &playerStats{
				displayName:    tx.Player,
				community:      domain.UnknownCommunity(),
				total:          decimal.Zero,
				platformTotals: make(map[string]decimal.Decimal),
				label:          domain.NoBonus,
			}
			stats[key] = ps
		}

		if part, ok := partByTx[tx.ID]; ok {
			if part.Community.Known || !ps.community.Known {
				ps.community = part.Community
			}
			if part.Participated {
				ps.label = part.BonusLabel
			}
		}

		// Any movement counts as activity; only deposits feed the totals.
		if !ps.hasActivity || tx.Date.After(ps.last) {
			ps.last = tx.Date
			ps.hasActivity = true
		}

		seen++
		if ps.bandCounts[domain.BandForHour(tx.Hour)] == 0 {
			ps.bandFirstSeen[domain.BandForHour(tx.Hour)] = seen
		}
		ps.bandCounts[domain.BandForHour(tx.Hour)]++
		if ps.hourCounts[tx.Hour] == 0 {
			ps.hourFirstSeen[tx.Hour] = seen
		}
		ps.hourCounts[tx.Hour]++

		if tx.Kind != domain.KindDeposit {
			continue
		}
		ps.total = ps.total.Add(tx.Amount)
		ps.depositCount++

		platform := tx.Platform
		if platform == "" {
			platform = "default"
		}
		sub, ok := ps.platformTotals[platform]
		if !ok {
			sub = decimal.Zero
		}
		ps.platformTotals[platform] = sub.Add(tx.Amount)
	}

	summaries := make([]domain.PlayerSummary, 0, len(stats)+len(opts.Roster))
	for _, ps := range stats {
		summaries = append(summaries, ps.summarize(now))
	}

	for _, name := range opts.Roster {
		if _, ok := stats[playerKey(name)]; ok {
			continue
		}
		summaries = append(summaries, zeroSummary(name))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if cmp := summaries[i].TotalAmount.Cmp(summaries[j].TotalAmount); cmp != 0 {
			return cmp > 0
		}
		return playerKey(summaries[i].Player) < playerKey(summaries[j].Player)
	})

	return summaries
}

func (ps *playerStats) summarize(now time.Time) domain.PlayerSummary {
	return domain.PlayerSummary{
		Player:         ps.displayName,
		Community:      ps.community,
		TotalAmount:    ps.total,
		DepositCount:   ps.depositCount,
		PlatformTotals: ps.platformTotals,
		LastActivity:   ps.last,
		HasActivity:    ps.hasActivity,
		DaysInactive:   wholeDaysBetween(ps.last, now),
		DominantBand:   ps.dominantBand(),
		PeakHour:       ps.peakHour(),
		BonusLabel:     ps.label,
	}
}

func zeroSummary(player string) domain.PlayerSummary {
	return domain.PlayerSummary{
		Player:      player,
		Community:   domain.UnknownCommunity(),
		TotalAmount: decimal.Zero,
		BonusLabel:  domain.NoBonus,
	}
}

func (ps *playerStats) dominantBand() domain.TimeBand {
	best := domain.BandNightEarly
	for b := 1; b < len(ps.bandCounts); b++ {
		band := domain.TimeBand(b)
		if ps.bandCounts[band] > ps.bandCounts[best] {
			best = band
			continue
		}
		if ps.bandCounts[band] == ps.bandCounts[best] &&
			ps.bandCounts[band] > 0 &&
			ps.bandFirstSeen[band] < ps.bandFirstSeen[best] {
			best = band
		}
	}
	return best
}

func (ps *playerStats) peakHour() int {
	best := 0
	for h := 1; h < len(ps.hourCounts); h++ {
		if ps.hourCounts[h] > ps.hourCounts[best] {
			best = h
			continue
		}
		if ps.hourCounts[h] == ps.hourCounts[best] &&
			ps.hourCounts[h] > 0 &&
			ps.hourFirstSeen[h] < ps.hourFirstSeen[best] {
			best = h
		}
	}
	return best
}

// wholeDaysBetween compares calendar days, ignoring time of day.
func wholeDaysBetween(last, now time.Time) int {
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(nowDay.Sub(lastDay).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func playerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
