package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateProfileRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Generation string `json:"generation"`
	TeamID     *uint  `json:"team_id"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Length(2, 50)),
		validation.Field(&req.Generation, validation.Length(0, 20)),
	)
}
