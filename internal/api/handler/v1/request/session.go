package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AssignMembersRequest struct {
	UserIDs []uint `json:"user_ids"`
}

func (req *AssignMembersRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserIDs, validation.Required),
	)
}
