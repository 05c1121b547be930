package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreatePracticeRequest struct {
	Title             string   `json:"title"`
	Date              string   `json:"date"`
	Location          string   `json:"location"`
	TeamID            uint     `json:"team_id"`
	TargetGenerations []string `json:"target_generations"`
}

func (req *CreatePracticeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Location, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.TeamID, validation.Required),
		validation.Field(&req.TargetGenerations, validation.Required),
	)
}
