package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/repository"
)

// ErrAttendanceExists signals a second record for the same student and date.
var ErrAttendanceExists = errors.New("attendance already recorded for this date")

// AttendanceService records and reads daily attendance.
type AttendanceService struct {
	records *repository.AttendanceRepository
	users   *repository.UserRepository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(records *repository.AttendanceRepository, users *repository.UserRepository) *AttendanceService {
	return &AttendanceService{records: records, users: users}
}

// Mark records a student's presence for a date. One record per student per
// date; a second attempt returns ErrAttendanceExists.
func (s *AttendanceService) Mark(ctx context.Context, req *model.MarkAttendanceRequest) (*model.Attendance, error) {
	if _, err := s.users.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	record := &model.Attendance{
		StudentID: req.StudentID,
		Date:      date,
		Present:   *req.Present,
	}
	if err := s.records.Mark(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAttendanceExists
		}
		return nil, err
	}
	return record, nil
}

// History retrieves a student's attendance records, newest first.
func (s *AttendanceService) History(ctx context.Context, studentID int) ([]model.Attendance, error) {
	return s.records.ListByStudent(ctx, studentID)
}
