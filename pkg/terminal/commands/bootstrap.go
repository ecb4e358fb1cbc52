package commands

import (
	"database/sql"
	"fmt"

	"github.com/cp-tools/casino-atlas/pkg/services/bonus"
	"github.com/cp-tools/casino-atlas/pkg/services/catalog"
	"github.com/cp-tools/casino-atlas/pkg/services/community"
	"github.com/cp-tools/casino-atlas/pkg/services/config"
	"github.com/cp-tools/casino-atlas/pkg/services/report"
	"github.com/cp-tools/casino-atlas/pkg/store/duckdb"
	"github.com/cp-tools/casino-atlas/pkg/store/duckdb/activity"
)

// buildService wires the report pipeline from a profile file and a
// DuckDB path. The returned *sql.DB must be closed by the caller.
func buildService(profilePath, dbPath string) (report.Service, *sql.DB, error) {
	profile := config.DefaultProfile()
	if profilePath != "" {
		loaded, err := config.LoadProfile(profilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = loaded
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open activity database: %w", err)
	}

	activityStore, err := activity.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create activity store: %w", err)
	}

	classifier := community.NewClassifier(profile.Markers())
	evaluator := bonus.NewEvaluator(classifier)
	fileCatalog := catalog.NewFileCatalog(profile.Catalog.Offers, profile.Catalog.Roster)

	svc := report.NewController(fileCatalog, evaluator, activityStore, profile.Thresholds(), profile.TopCount)
	return svc, db, nil
}
