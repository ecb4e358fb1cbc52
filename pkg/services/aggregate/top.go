package aggregate

import (
	"sort"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
)

// TopByAmount returns the n largest depositors by total amount. Players
// with no deposits never make the list.
func TopByAmount(summaries []domain.PlayerSummary, n int) []domain.PlayerSummary {
	top := withDeposits(summaries)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalAmount.Cmp(top[j].TotalAmount) > 0
	})
	return truncate(top, n)
}

// TopByCount returns the n most frequent depositors by deposit count.
func TopByCount(summaries []domain.PlayerSummary, n int) []domain.PlayerSummary {
	top := withDeposits(summaries)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].DepositCount > top[j].DepositCount
	})
	return truncate(top, n)
}

func withDeposits(summaries []domain.PlayerSummary) []domain.PlayerSummary {
	out := make([]domain.PlayerSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.DepositCount > 0 {
			out = append(out, s)
		}
	}
	return out
}

func truncate(summaries []domain.PlayerSummary, n int) []domain.PlayerSummary {
	if n > 0 && len(summaries) > n {
		return summaries[:n]
	}
	return summaries
}
