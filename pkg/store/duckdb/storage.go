package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

// DailyActivitySchema backs the externally visible "daily activity" sheet.
// Every report run replaces its content wholesale; there is no partial
// update path.
const DailyActivitySchema = `
	CREATE TABLE IF NOT EXISTS daily_activity (
		player VARCHAR NOT NULL,
		community VARCHAR,
		total_amount DOUBLE,
		deposit_count INTEGER,
		last_activity TIMESTAMP NULL,
		days_inactive INTEGER,
		dominant_band VARCHAR,
		peak_hour INTEGER,
		bonus_label VARCHAR,
		tier VARCHAR,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (player)
	);
`

var bootQueries = []string{
	DailyActivitySchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

type txKey struct{}

// WithTransaction carries an externally managed transaction in the
// context; stores join it instead of opening their own.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
