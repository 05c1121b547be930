package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RecordAttendanceRequest struct {
	UserID uint   `json:"user_id"`
	Status string `json:"status"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (req *RecordAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("unanswered", "present", "absent", "late_leave")),
		validation.Field(&req.Reason, validation.Length(0, 200)),
		validation.Field(&req.Notes, validation.Length(0, 200)),
	)
}
