package catalog

import (
	"context"
	"os"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
)

// FileCatalog loads the offer catalog and VIP roster from local tabular
// files. Each load produces a fresh immutable snapshot for one report run.
type FileCatalog struct {
	offersPath string
	rosterPath string
}

func NewFileCatalog(offersPath, rosterPath string) *FileCatalog {
	return &FileCatalog{
		offersPath: offersPath,
		rosterPath: rosterPath,
	}
}

func (c *FileCatalog) Offers(ctx context.Context) ([]domain.BonusOffer, error) {
	f, err := os.Open(c.offersPath)
	if err != nil {
		return nil, &SourceUnavailableError{Source: "offer catalog", Err: err}
	}
	defer f.Close()

	return ParseOffers(ctx, f)
}

func (c *FileCatalog) Roster(ctx context.Context) ([]string, error) {
	f, err := os.Open(c.rosterPath)
	if err != nil {
		return nil, &SourceUnavailableError{Source: "roster", Err: err}
	}
	defer f.Close()

	return ParseRoster(f)
}
