package domain

// PracticeDetail aggregates everything the practice detail page shows. All
// derived fields are recomputed per request; none of them are cached.
type PracticeDetail struct {
	Practice Practice `json:"practice"`

	// ViewerAttendance is the requesting user's own attendance row, when the
	// practice targets them.
	ViewerAttendance *Attendance `json:"viewer_attendance"`

	Attendances         []Attendance `json:"attendances"`
	PresentAttendees    []User       `json:"present_attendees"`
	AssignableAttendees []User       `json:"assignable_attendees"`
	UnassignedAttendees []User       `json:"unassigned_attendees"`

	Sessions       []Session `json:"sessions"`
	MaxSessionSize int       `json:"max_session_size"`

	BoardsAtLocation        int `json:"boards_at_location"`
	RequiredTransportBoards int `json:"required_transport_boards"`

	TransportsTo     []Transport `json:"transports_to"`
	TransportsFrom   []Transport `json:"transports_from"`
	BoardsAtPractice []Board     `json:"boards_at_practice"`
}
