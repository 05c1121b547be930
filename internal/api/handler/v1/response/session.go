package response

import "github.com/takumi-oki/boardops-api/internal/domain"

type AssignMembersResponse struct {
	Added []string `json:"added"`
}

type UnassignedResponse struct {
	Users []domain.User `json:"users"`
}
