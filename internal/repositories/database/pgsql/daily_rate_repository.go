package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	"github.com/mizan-erp/mizan_backend/internal/models"
	"github.com/mizan-erp/mizan_backend/internal/utils/mapping"
)

type PgxDailyRateRepository struct {
	BaseRepository
}

// newPgxDailyRateRepository creates a new repository for the daily FX rate ledger.
func newPgxDailyRateRepository(pool *pgxpool.Pool) portsrepo.DailyRateRepositoryWithTx {
	return &PgxDailyRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DailyRateRepositoryWithTx = (*PgxDailyRateRepository)(nil)

const dailyRateColumns = `rate_id, rate_date, usd_to_syp_old, usd_to_syp_new, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanDailyRate(row pgx.Row) (models.DailyExchangeRate, error) {
	var m models.DailyExchangeRate
	err := row.Scan(
		&m.RateID,
		&m.RateDate,
		&m.USDToSYPOld,
		&m.USDToSYPNew,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveRate inserts a new daily rate row. The unique index on rate_date turns
// a second row for the same date into ErrDuplicate.
func (r *PgxDailyRateRepository) SaveRate(ctx context.Context, rate domain.DailyExchangeRate) error {
	m := mapping.ToModelDailyExchangeRate(rate)
	query := `
		INSERT INTO daily_exchange_rates (` + dailyRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RateID,
		m.RateDate,
		m.USDToSYPOld,
		m.USDToSYPNew,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save daily rate for "+m.RateDate.Format("2006-01-02"))
	}
	return nil
}

// UpdateRate corrects an existing rate row.
func (r *PgxDailyRateRepository) UpdateRate(ctx context.Context, rate domain.DailyExchangeRate) error {
	m := mapping.ToModelDailyExchangeRate(rate)
	query := `
		UPDATE daily_exchange_rates
		SET usd_to_syp_old = $2, usd_to_syp_new = $3, notes = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE rate_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RateID,
		m.USDToSYPOld,
		m.USDToSYPNew,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update daily rate %s: %w", m.RateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindRateByID retrieves a rate row by its identifier.
func (r *PgxDailyRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.DailyExchangeRate, error) {
	query := `SELECT ` + dailyRateColumns + ` FROM daily_exchange_rates WHERE rate_id = $1;`
	m, err := scanDailyRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find daily rate %s: %w", rateID, err)
	}
	d := mapping.ToDomainDailyExchangeRate(m)
	return &d, nil
}

// FindRateByDate retrieves the rate row for an exact calendar date.
func (r *PgxDailyRateRepository) FindRateByDate(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error) {
	query := `SELECT ` + dailyRateColumns + ` FROM daily_exchange_rates WHERE rate_date = $1;`
	m, err := scanDailyRate(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find daily rate for %s: %w", date.Format("2006-01-02"), err)
	}
	d := mapping.ToDomainDailyExchangeRate(m)
	return &d, nil
}

// FindRateOnOrBefore retrieves the most recent rate row dated on or before
// the given date.
func (r *PgxDailyRateRepository) FindRateOnOrBefore(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error) {
	query := `
		SELECT ` + dailyRateColumns + `
		FROM daily_exchange_rates
		WHERE rate_date <= $1
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	m, err := scanDailyRate(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find daily rate on or before %s: %w", date.Format("2006-01-02"), err)
	}
	d := mapping.ToDomainDailyExchangeRate(m)
	return &d, nil
}

// ListRates retrieves rate rows within an optional date range, newest first.
func (r *PgxDailyRateRepository) ListRates(ctx context.Context, from, to *time.Time, limit int) ([]domain.DailyExchangeRate, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `SELECT ` + dailyRateColumns + ` FROM daily_exchange_rates`
	args := []interface{}{}
	clause := " WHERE"
	if from != nil {
		args = append(args, *from)
		query += clause + " rate_date >= $" + strconv.Itoa(len(args))
		clause = " AND"
	}
	if to != nil {
		args = append(args, *to)
		query += clause + " rate_date <= $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += " ORDER BY rate_date DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily rates: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DailyExchangeRate, error) {
		return scanDailyRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily rates: %w", err)
	}
	return mapping.ToDomainDailyExchangeRateSlice(ms), nil
}

// CountRates reports how many rate rows exist in the ledger.
func (r *PgxDailyRateRepository) CountRates(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM daily_exchange_rates;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count daily rates: %w", err)
	}
	return count, nil
}
