package response

import "github.com/takumi-oki/boardops-api/internal/domain"

type BoardListResponse struct {
	Boards         []domain.Board `json:"boards"`
	LocationCounts map[string]int `json:"location_counts"`
}

type RelocateBoardsResponse struct {
	Moved int `json:"moved"`
}
