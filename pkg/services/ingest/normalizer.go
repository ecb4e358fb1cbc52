package ingest

import (
	"context"
	"strings"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Canonical field names produced by both normalization strategies.
const (
	fieldID         = "id"
	fieldKind       = "kind"
	fieldAmount     = "amount"
	fieldBalance    = "balance"
	fieldDate       = "date"
	fieldTime       = "time"
	fieldSourceUser = "source_user"
	fieldPlatform   = "platform"
	fieldAdmin      = "admin"
	fieldPlayer     = "player"
)

// positionalLayouts maps a column count onto canonical field names by
// position. Source feeds ship either 13 or 14 columns; anything else is a
// schema mismatch, fatal for the run.
var positionalLayouts = map[int][]string{
	13: {
		fieldID, fieldKind, fieldAmount, "aux1", "aux2", "aux3", fieldBalance,
		fieldDate, fieldTime, fieldSourceUser, fieldPlatform, fieldAdmin, fieldPlayer,
	},
	14: {
		fieldID, fieldKind, fieldAmount, "aux1", "aux2", "aux3", fieldBalance,
		fieldDate, fieldTime, fieldSourceUser, fieldPlatform, fieldAdmin, fieldPlayer, "notes",
	},
}

// headerSynonyms matches named headers after lower-casing and trimming,
// tolerating case and whitespace drift across uploads.
var headerSynonyms = map[string]string{
	"id":          fieldID,
	"tipo":        fieldKind,
	"depositar":   fieldAmount,
	"monto":       fieldAmount,
	"importe":     fieldAmount,
	"saldo":       fieldBalance,
	"fecha":       fieldDate,
	"hora":        fieldTime,
	"del usuario": fieldSourceUser,
	"usuario":     fieldSourceUser,
	"al usuario":  fieldPlayer,
	"jugador":     fieldPlayer,
	"plataforma":  fieldPlatform,
	"sala":        fieldPlatform,
	"admin":       fieldAdmin,
}

// requiredNamedFields must all be resolvable for the named strategy to
// produce usable transactions.
var requiredNamedFields = []string{fieldAmount, fieldDate, fieldTime, fieldPlayer}

// Normalizer maps source-specific rows onto canonical transactions.
// Pure transform: no side effects beyond logging dropped rows.
type Normalizer interface {
	Normalize(ctx context.Context, table *RawTable) ([]domain.Transaction, error)
}

type positionalNormalizer struct{}

// NewPositionalNormalizer renames columns by fixed position. The input
// header row is present but its labels are ignored; only the count matters.
func NewPositionalNormalizer() Normalizer {
	return &positionalNormalizer{}
}

func (n *positionalNormalizer) Normalize(ctx context.Context, table *RawTable) ([]domain.Transaction, error) {
	layout, ok := positionalLayouts[len(table.Headers)]
	if !ok {
		return nil, &SchemaMismatchError{Expected: 13, Actual: len(table.Headers)}
	}

	fields := make(map[string]int, len(layout))
	for i, name := range layout {
		fields[name] = i
	}
	return parseRows(ctx, table.Rows, fields, nil, len(layout))
}

type namedNormalizer struct {
	synonyms map[string]string
}

// NewNamedNormalizer matches header labels against the synonym table after
// lower-casing and trimming. Unmapped columns are carried along as extra
// fields and never read downstream.
func NewNamedNormalizer() Normalizer {
	return &namedNormalizer{synonyms: headerSynonyms}
}

func (n *namedNormalizer) Normalize(ctx context.Context, table *RawTable) ([]domain.Transaction, error) {
	fields := make(map[string]int)
	extras := make(map[string]int)
	for i, h := range table.Headers {
		key := strings.ToLower(strings.TrimSpace(h))
		canonical, ok := n.synonyms[key]
		if !ok {
			extras[strings.TrimSpace(h)] = i
			continue
		}
		if _, dup := fields[canonical]; !dup {
			fields[canonical] = i
		}
	}

	var missing []string
	for _, f := range requiredNamedFields {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Actual: len(table.Headers), Missing: missing}
	}

	return parseRows(ctx, table.Rows, fields, extras, len(table.Headers))
}

// DetectNormalizer picks the named strategy when the header row resolves
// every required field through the synonym table, and falls back to the
// positional layouts otherwise.
func DetectNormalizer(table *RawTable) Normalizer {
	resolved := make(map[string]bool)
	for _, h := range table.Headers {
		if canonical, ok := headerSynonyms[strings.ToLower(strings.TrimSpace(h))]; ok {
			resolved[canonical] = true
		}
	}
	for _, f := range requiredNamedFields {
		if !resolved[f] {
			return NewPositionalNormalizer()
		}
	}
	return NewNamedNormalizer()
}

func parseRows(
	ctx context.Context,
	rows [][]string,
	fields map[string]int,
	extras map[string]int,
	width int,
) ([]domain.Transaction, error) {
	logger := zerolog.Ctx(ctx)
	txs := make([]domain.Transaction, 0, len(rows))

	for i, row := range rows {
		if len(row) != width {
			logger.Warn().
				Int("row", i+1).
				Int("columns", len(row)).
				Int("want", width).
				Msg("dropping row with unexpected column count")
			continue
		}

		tx, err := parseRow(i+1, row, fields, extras)
		if err != nil {
			logger.Warn().Err(err).Int("row", i+1).Msg("dropping unparseable row")
			continue
		}
		txs = append(txs, tx)
	}

	return txs, nil
}
