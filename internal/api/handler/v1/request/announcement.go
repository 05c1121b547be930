package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (req *CreateAnnouncementRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Content, validation.Required, validation.Length(1, 2000)),
	)
}
