package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateBoardRequest struct {
	Name         string  `json:"name"`
	SerialNumber *string `json:"serial_number"`
	Location     string  `json:"location"`
	Notes        string  `json:"notes"`
}

func (req *CreateBoardRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Location, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

type UpdateBoardRequest struct {
	Name         string  `json:"name"`
	SerialNumber *string `json:"serial_number"`
	Location     string  `json:"location"`
	Notes        string  `json:"notes"`
}

func (req *UpdateBoardRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Location, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

type RelocateBoardsRequest struct {
	BoardIDs []uint `json:"board_ids"`
	Location string `json:"location"`
}

func (req *RelocateBoardsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BoardIDs, validation.Required),
		validation.Field(&req.Location, validation.Required, validation.Length(1, 100)),
	)
}
