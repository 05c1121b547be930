package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AssignTransportRequest struct {
	UserID    uint   `json:"user_id"`
	BoardIDs  []uint `json:"board_ids"`
	Direction string `json:"direction"`
}

func (req *AssignTransportRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.BoardIDs, validation.Required),
		validation.Field(&req.Direction, validation.Required, validation.In("to", "from")),
	)
}

type RunLotteryRequest struct {
	BoardIDs []uint `json:"board_ids"`
}

func (req *RunLotteryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BoardIDs, validation.Required),
	)
}
