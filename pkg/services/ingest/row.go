package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var dateLayouts = []string{domain.DateLayout, "2/1/2006", "2006-01-02"}

func parseRow(rowNum int, row []string, fields map[string]int, extras map[string]int) (domain.Transaction, error) {
	get := func(name string) string {
		idx, ok := fields[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	amount, err := parseAmount(get(fieldAmount))
	if err != nil {
		return domain.Transaction{}, &FieldParseError{Row: rowNum, Field: fieldAmount, Value: get(fieldAmount), Err: err}
	}

	date, err := parseDate(get(fieldDate))
	if err != nil {
		return domain.Transaction{}, &FieldParseError{Row: rowNum, Field: fieldDate, Value: get(fieldDate), Err: err}
	}

	hour, minute, second, err := parseTime(get(fieldTime))
	if err != nil {
		return domain.Transaction{}, &FieldParseError{Row: rowNum, Field: fieldTime, Value: get(fieldTime), Err: err}
	}

	id := get(fieldID)
	if id == "" {
		id = uuid.NewString()
	}

	tx := domain.Transaction{
		ID:         id,
		Kind:       parseKind(get(fieldKind), fields),
		Amount:     amount,
		Date:       date,
		Hour:       hour,
		Minute:     minute,
		Second:     second,
		SourceUser: get(fieldSourceUser),
		Player:     get(fieldPlayer),
		Platform:   get(fieldPlatform),
	}

	if len(extras) > 0 {
		tx.Extra = make(map[string]string, len(extras))
		for name, idx := range extras {
			tx.Extra[name] = strings.TrimSpace(row[idx])
		}
	}

	return tx, nil
}

// parseKind maps the source's movement type onto a canonical kind. Feeds
// without a type column are deposit-only transfer reports.
func parseKind(raw string, fields map[string]int) domain.TxKind {
	if _, ok := fields[fieldKind]; !ok {
		return domain.KindDeposit
	}
	switch strings.ToLower(raw) {
	case "in", "deposit", "carga":
		return domain.KindDeposit
	case "out", "withdraw", "withdrawal", "retiro":
		return domain.KindWithdrawal
	default:
		return domain.KindOther
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	cleaned := strings.ReplaceAll(raw, " ", "")
	d, err := decimal.NewFromString(cleaned)
	if err == nil {
		return d, nil
	}
	// Locale drift: some feeds use a decimal comma.
	if strings.Count(cleaned, ",") == 1 && !strings.Contains(cleaned, ".") {
		return decimal.NewFromString(strings.Replace(cleaned, ",", ".", 1))
	}
	return decimal.Decimal{}, err
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func parseTime(raw string) (hour, minute, second int, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("unrecognized time %q", raw)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("unrecognized time %q", raw)
		}
		nums[i] = n
	}
	if nums[0] < 0 || nums[0] > 23 || nums[1] < 0 || nums[1] > 59 || nums[2] < 0 || nums[2] > 59 {
		return 0, 0, 0, fmt.Errorf("time %q out of range", raw)
	}
	return nums[0], nums[1], nums[2], nil
}
