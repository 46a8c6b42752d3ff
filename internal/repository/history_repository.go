package repository

import (
	"context"
	"database/sql"

	"github.com/ellucho77/HerbaBeauty/internal/model"
)

// HistoryRepo provides operations for the historical appointment
// collection. Historical rows are written once by the completion workflow
// and never updated; the only mutation besides insert is a delete by ID,
// kept for parity with the store contract.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo returns a new HistoryRepo bound to the given database.
func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// Create inserts a completed appointment and returns the generated ID. The
// historical row gets its own identifier; it is a copy of the active row's
// fields, not a reference to it.
func (r *HistoryRepo) Create(ctx context.Context, a model.Appointment) (uint64, error) {
	const q = "INSERT INTO historical_appointments (name, `date`, `time`, service, created_at, completed_at) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, q, a.Name, a.Date, a.Time, a.Service, a.CreatedAt, a.CompletedAt)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAll returns the complete historical collection ordered by ID.
func (r *HistoryRepo) ListAll(ctx context.Context) ([]model.Appointment, error) {
	const q = "SELECT id, name, `date`, `time`, service, created_at, completed_at FROM historical_appointments ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Appointment, 0)
	for rows.Next() {
		var a model.Appointment
		var completed sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.Date, &a.Time, &a.Service, &a.CreatedAt, &completed); err != nil {
			return nil, err
		}
		if completed.Valid {
			a.CompletedAt = completed.String
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID removes one historical appointment. Nothing in the service
// calls this today (history is cleared in bulk by an external job), but the
// store contract exposes delete on both collections.
func (r *HistoryRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM historical_appointments WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
