package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// DefaultHistoryLimit bounds load-history queries without an explicit limit
const DefaultHistoryLimit = 20

// MaxHistoryLimit is the largest accepted load-history limit
const MaxHistoryLimit = 500

// LoadRepository persists dataset load reports
type LoadRepository struct {
	db *sql.DB
}

// NewLoadRepository creates a new load repository
func NewLoadRepository(db *sql.DB) *LoadRepository {
	return &LoadRepository{db: db}
}

// Record stores a load report and returns its ID
func (r *LoadRepository) Record(report models.LoadReport) (int64, error) {
	query := `INSERT INTO dataset_loads (
		source, mod_time, size_bytes, rows_read, rows_retained,
		dropped_no_adults, dropped_negative_rate, dropped_malformed,
		null_arrival_dates, missing_guest_counts, loaded_at, duration_ms
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		report.Source, toMillis(report.ModTime), report.SizeBytes,
		report.RowsRead, report.RowsRetained,
		report.DroppedNoAdults, report.DroppedNegativeRate, report.DroppedMalformed,
		report.NullArrivalDates, report.MissingGuestCounts,
		toMillis(report.LoadedAt), report.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record load: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get load id: %w", err)
	}
	return id, nil
}

// Recent returns the most recent load reports, newest first
func (r *LoadRepository) Recent(limit int) ([]models.LoadReport, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	query := `SELECT id, source, mod_time, size_bytes, rows_read, rows_retained,
		dropped_no_adults, dropped_negative_rate, dropped_malformed,
		null_arrival_dates, missing_guest_counts, loaded_at, duration_ms
		FROM dataset_loads
		ORDER BY loaded_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query loads: %w", err)
	}
	defer rows.Close()

	reports := make([]models.LoadReport, 0, limit)
	for rows.Next() {
		var report models.LoadReport
		var modTime, loadedAt int64
		err := rows.Scan(
			&report.ID, &report.Source, &modTime, &report.SizeBytes,
			&report.RowsRead, &report.RowsRetained,
			&report.DroppedNoAdults, &report.DroppedNegativeRate, &report.DroppedMalformed,
			&report.NullArrivalDates, &report.MissingGuestCounts,
			&loadedAt, &report.DurationMS,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load: %w", err)
		}
		report.ModTime = fromMillis(modTime)
		report.LoadedAt = fromMillis(loadedAt)
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loads: %w", err)
	}
	return reports, nil
}

// Count returns the number of recorded loads
func (r *LoadRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM dataset_loads").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count loads: %w", err)
	}
	return count, nil
}

// Timestamps are stored as unix milliseconds; 0 means unset
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
