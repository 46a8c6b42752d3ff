package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/ellucho77/HerbaBeauty/internal/model"
)

// AppointmentRepo provides CRUD operations for the active appointment
// collection. Rows mirror the fields the booking form collects; every
// date/time value is stored as the raw string the client submitted so the
// lexicographic ordering rules hold end to end.
type AppointmentRepo struct {
	db *sql.DB
}

// NewAppointmentRepo returns a new AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// Create inserts a new active appointment and returns the generated ID. The
// table carries a unique index on (date, time); when two submissions race
// past the snapshot conflict check, the second insert trips the index and is
// reported as ErrConflict.
func (r *AppointmentRepo) Create(ctx context.Context, a model.Appointment) (uint64, error) {
	const q = "INSERT INTO appointments (name, `date`, `time`, service, created_at) VALUES (?, ?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, q, a.Name, a.Date, a.Time, a.Service, a.CreatedAt)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAll returns the complete active collection ordered by ID. The stable
// order keeps successive snapshots comparable; display ordering happens in
// the view layer.
func (r *AppointmentRepo) ListAll(ctx context.Context) ([]model.Appointment, error) {
	const q = "SELECT id, name, `date`, `time`, service, created_at FROM appointments ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Appointment, 0)
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.Name, &a.Date, &a.Time, &a.Service, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID removes one active appointment. It returns ErrNotFound when no
// row matched, so callers can distinguish an already-removed appointment
// from a successful cancellation.
func (r *AppointmentRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM appointments WHERE id = ?`
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
