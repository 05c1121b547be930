package domain

import "time"

type Practice struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	TeamID    uint      `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is a numbered sub-slot of a practice. Numbers are 1-based, assigned
// as count+1 at creation and never reused, so gaps appear after deletions.
type Session struct {
	ID            uint       `json:"id"`
	PracticeID    uint       `json:"practice_id"`
	SessionNumber int        `json:"session_number"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Members       []User     `json:"members"`
}

type AttendanceStatus string

const (
	StatusUnanswered AttendanceStatus = "unanswered"
	StatusPresent    AttendanceStatus = "present"
	StatusAbsent     AttendanceStatus = "absent"
	StatusLateLeave  AttendanceStatus = "late_leave"
)

// Assignable reports whether the status makes a user available for session
// assignment. The lottery uses the stricter "present only" rule.
func (s AttendanceStatus) Assignable() bool {
	return s == StatusPresent || s == StatusLateLeave
}

type Attendance struct {
	ID         uint             `json:"id"`
	PracticeID uint             `json:"practice_id"`
	UserID     uint             `json:"user_id"`
	User       User             `json:"user"`
	Status     AttendanceStatus `json:"status"`
	Reason     string           `json:"reason"`
	Notes      string           `json:"notes"`
}
