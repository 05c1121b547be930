package response

import "github.com/takumi-oki/boardops-api/internal/domain"

type AssignTransportResponse struct {
	Results []domain.TransportItemResult `json:"results"`
}
