package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kdkce/examreg-backend/internal/model"
)

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Mark inserts an attendance record. Returns ErrDuplicate if the student
// already has a record for that date.
func (r *AttendanceRepository) Mark(ctx context.Context, a *model.Attendance) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, date, present)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		a.StudentID, a.Date, a.Present,
	).Scan(&a.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// ListByStudent retrieves a student's attendance history, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, date, present
		 FROM attendance WHERE student_id = $1 ORDER BY date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.Attendance{}
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Date, &a.Present); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
