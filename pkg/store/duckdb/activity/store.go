package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cp-tools/casino-atlas/pkg/models/store"
	"github.com/cp-tools/casino-atlas/pkg/store/duckdb"
)

// Store is the daily-activity sink. The core computes fresh summaries per
// run and hands them over; ReplaceAll drops all prior rows so the sheet
// always mirrors exactly one run.
type Store interface {
	ReplaceAll(ctx context.Context, rows []store.ActivityRow) error
	GetAll(ctx context.Context) ([]store.ActivityRow, error)
}

type activityStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &activityStore{db: db}, nil
}

func (s *activityStore) ReplaceAll(ctx context.Context, rows []store.ActivityRow) error {
	external := duckdb.GetTransaction(ctx)
	tx := external
	if tx == nil {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_activity`); err != nil {
		return fmt.Errorf("clear daily activity: %w", err)
	}

	query := `
		INSERT INTO daily_activity (
			player, community, total_amount, deposit_count, last_activity,
			days_inactive, dominant_band, peak_hour, bonus_label, tier
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.ExecContext(ctx,
			row.Player,
			row.Community,
			row.TotalAmount,
			row.DepositCount,
			row.LastActivity,
			row.DaysInactive,
			row.DominantBand,
			row.PeakHour,
			row.BonusLabel,
			row.Tier,
		)
		if err != nil {
			return fmt.Errorf("insert activity row: %w", err)
		}
	}

	if external == nil {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit replace: %w", err)
		}
	}
	return nil
}

func (s *activityStore) GetAll(ctx context.Context) ([]store.ActivityRow, error) {
	query := `
		SELECT player, community, total_amount, deposit_count, last_activity,
			days_inactive, dominant_band, peak_hour, bonus_label, tier
		FROM daily_activity
		ORDER BY total_amount DESC, player ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query daily activity: %w", err)
	}
	defer rows.Close()

	return scanActivityRows(rows)
}

func scanActivityRows(rows *sql.Rows) ([]store.ActivityRow, error) {
	records := make([]store.ActivityRow, 0)
	for rows.Next() {
		var (
			r    store.ActivityRow
			last sql.NullTime
		)
		err := rows.Scan(
			&r.Player,
			&r.Community,
			&r.TotalAmount,
			&r.DepositCount,
			&last,
			&r.DaysInactive,
			&r.DominantBand,
			&r.PeakHour,
			&r.BonusLabel,
			&r.Tier,
		)
		if err != nil {
			return nil, err
		}
		if last.Valid {
			t := last.Time
			r.LastActivity = &t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
