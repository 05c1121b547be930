package response

import "github.com/takumi-oki/boardops-api/internal/domain"

type CreatePracticeResponse struct {
	Practice domain.Practice `json:"practice"`
	Targets  int             `json:"targets"`
}

type DashboardResponse struct {
	Unanswered []domain.Attendance `json:"unanswered"`
}
