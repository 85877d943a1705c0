package model

import "time"

// Attendance is a per-student per-date present/absent record,
// unique on (student, date).
type Attendance struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Date      time.Time `json:"date"`
	Present   bool      `json:"present"`
}

// MarkAttendanceRequest is the admin payload for recording attendance.
type MarkAttendanceRequest struct {
	StudentID int    `json:"student_id" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Present   *bool  `json:"present" binding:"required"`
}
