package bonus

import (
	"context"
	"fmt"
	"strings"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/cp-tools/casino-atlas/pkg/services/community"
	"github.com/rs/zerolog"
)

// Evaluator decides, per transaction, whether a bonus offer applies and
// which one. Offers are evaluated in catalog order and a later match
// overwrites an earlier one: with no explicit priority field in the
// catalog, insertion order is the tie-break.
type Evaluator struct {
	classifier *community.Classifier
}

func NewEvaluator(classifier *community.Classifier) *Evaluator {
	return &Evaluator{classifier: classifier}
}

// EvaluateAll produces one participation record per transaction. The full
// batch is needed up front so first-deposit-of-day offers can identify the
// chronologically first deposit of each player per date.
func (e *Evaluator) EvaluateAll(
	ctx context.Context,
	txs []domain.Transaction,
	offers []domain.BonusOffer,
) []domain.Participation {
	firsts := firstDepositOfDay(txs)

	records := make([]domain.Participation, 0, len(txs))
	for i := range txs {
		key := dayKey(txs[i])
		records = append(records, e.Evaluate(ctx, txs[i], offers, firsts[key] == i))
	}
	return records
}

// Evaluate resolves the transaction's community, filters offers to its
// calendar date and community, and applies every offer whose inclusive
// hour window contains the transaction. At most one bonus is recorded;
// the last qualifying offer wins.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	tx domain.Transaction,
	offers []domain.BonusOffer,
	firstOfDay bool,
) domain.Participation {
	logger := zerolog.Ctx(ctx)

	record := domain.Participation{
		TransactionID: tx.ID,
		Player:        tx.Player,
		Participated:  false,
		BonusLabel:    domain.NoBonus,
		Community:     e.classifier.Classify(tx.SourceUser),
	}

	if tx.Kind != domain.KindDeposit {
		return record
	}

	date := tx.DateKey()
	for _, offer := range offers {
		if offer.Date != date {
			continue
		}
		if !strings.EqualFold(offer.Community, record.Community.Name) {
			continue
		}
		if tx.Hour < offer.StartHour || tx.Hour > offer.EndHour {
			continue
		}

		switch offer.Kind {
		case domain.OfferFirstDeposit:
			if !firstOfDay {
				continue
			}
			// The enhanced tier is checked before, and overrides, the base tier.
			if offer.HasEnhanced && tx.Amount.GreaterThanOrEqual(offer.EnhancedMin) {
				record.Participated = true
				record.BonusLabel = bonusLabel(offer.EnhancedPercent, offer.Community)
			} else if tx.Amount.GreaterThanOrEqual(offer.BaseMin) {
				record.Participated = true
				record.BonusLabel = bonusLabel(offer.BasePercent, offer.Community)
			}
		default:
			if tx.Amount.GreaterThanOrEqual(offer.BaseMin) {
				record.Participated = true
				record.BonusLabel = bonusLabel(offer.BasePercent, offer.Community)
			}
		}
	}

	if record.Participated {
		logger.Debug().
			Str("tx", tx.ID).
			Str("player", tx.Player).
			Str("bonus", record.BonusLabel).
			Msg("bonus applied")
	}

	return record
}

func bonusLabel(percent, communityName string) string {
	return fmt.Sprintf("%s (%s)", percent, communityName)
}

func dayKey(tx domain.Transaction) string {
	return strings.ToLower(strings.TrimSpace(tx.Player)) + "|" + tx.DateKey()
}

// firstDepositOfDay maps player|date to the index of that player's
// chronologically first deposit on the date. Non-deposit movements never
// count as the first deposit.
func firstDepositOfDay(txs []domain.Transaction) map[string]int {
	firsts := make(map[string]int)
	for i, tx := range txs {
		if tx.Kind != domain.KindDeposit {
			continue
		}
		key := dayKey(tx)
		prev, ok := firsts[key]
		if !ok || tx.Before(txs[prev]) {
			firsts[key] = i
		}
	}
	return firsts
}
