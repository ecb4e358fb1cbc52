package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Offer catalog columns, in file order:
// date, community, start hour, end hour, kind, base min, base percent,
// enhanced min, enhanced percent. Hours come as "H:MM" strings.
const offerColumns = 9

// ParseOffers reads the offer catalog, preserving file order. File order
// is the evaluator's tie-break, so rows are never reordered here.
// Malformed hour or minimum fields skip that offer with a log; they never
// fail the load.
func ParseOffers(ctx context.Context, r io.Reader) ([]domain.BonusOffer, error) {
	logger := zerolog.Ctx(ctx)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read offer catalog: %w", err)
	}

	offers := make([]domain.BonusOffer, 0, len(records))
	for i, row := range records {
		if i == 0 && looksLikeHeader(row) {
			continue
		}
		offer, parseErr := parseOfferRow(i+1, row)
		if parseErr != nil {
			logger.Warn().Err(parseErr).Int("line", i+1).Msg("skipping malformed offer")
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "fecha" || first == "date"
}

func parseOfferRow(line int, row []string) (domain.BonusOffer, error) {
	if len(row) < offerColumns {
		return domain.BonusOffer{}, &OfferParseError{Line: line, Field: "row", Value: fmt.Sprintf("%d columns", len(row))}
	}

	get := func(i int) string { return strings.TrimSpace(row[i]) }

	start, err := parseHour(get(2))
	if err != nil {
		return domain.BonusOffer{}, &OfferParseError{Line: line, Field: "start_hour", Value: get(2)}
	}
	end, err := parseHour(get(3))
	if err != nil {
		return domain.BonusOffer{}, &OfferParseError{Line: line, Field: "end_hour", Value: get(3)}
	}

	baseMin, err := parseMinimum(get(5))
	if err != nil {
		return domain.BonusOffer{}, &OfferParseError{Line: line, Field: "base_min", Value: get(5)}
	}

	offer := domain.BonusOffer{
		Date:        get(0),
		Community:   get(1),
		StartHour:   start,
		EndHour:     end,
		Kind:        parseOfferKind(get(4)),
		BaseMin:     baseMin,
		BasePercent: get(6),
	}

	if enhancedRaw := get(7); enhancedRaw != "" {
		enhancedMin, err := parseMinimum(enhancedRaw)
		if err != nil {
			return domain.BonusOffer{}, &OfferParseError{Line: line, Field: "enhanced_min", Value: enhancedRaw}
		}
		offer.EnhancedMin = enhancedMin
		offer.EnhancedPercent = get(8)
		offer.HasEnhanced = true
	}

	return offer, nil
}

func parseOfferKind(raw string) domain.OfferKind {
	switch strings.ToLower(raw) {
	case "first", "first_deposit", "primera carga", "primera":
		return domain.OfferFirstDeposit
	default:
		return domain.OfferStandard
	}
}

// parseHour accepts "H:MM" catalog strings as well as bare hours.
func parseHour(raw string) (int, error) {
	hourPart := raw
	if idx := strings.Index(raw, ":"); idx >= 0 {
		hourPart = raw[:idx]
	}
	h, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("hour %d out of range", h)
	}
	return h, nil
}

// parseMinimum treats a blank minimum as zero: the threshold is always
// satisfied.
func parseMinimum(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
