package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takumi-oki/boardops-api/internal/api/handler/v1/request"
	"github.com/takumi-oki/boardops-api/internal/api/handler/v1/response"
	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/service"
)

type TeamService interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Delete(ctx context.Context, id uint) error
}

type TeamHandler struct {
	svc  TeamService
	uSvc UserService
}

func NewTeamHandler(svc TeamService, uSvc UserService) *TeamHandler {
	return &TeamHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListTeams godoc
// @Summary      List all teams
// @Tags         teams
// @Produce      json
// @Success      200      {array}    domain.Team
// @Failure      500      {object}   response.Err
// @Router       /teams [get]
// @Security BearerAuth
func (h *TeamHandler) HandleListTeams(ctx *gin.Context) {
	teams, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTeams -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleCreateTeam godoc
// @Summary      Create a team
// @Tags         teams
// @Produce      json
// @Param        request  body       request.CreateTeamRequest true "request body"
// @Success      201      {object}   domain.Team
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams [post]
// @Security BearerAuth
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.Create(ctx.Request.Context(), domain.Team{Name: req.Name})
	if err != nil {
		if errors.Is(err, service.ErrTeamNameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrTeamNameExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateTeam -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleDeleteTeam godoc
// @Summary      Delete an empty team
// @Tags         teams
// @Produce      json
// @Param        teamID   path       int  true  "team ID"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{teamID} [delete]
// @Security BearerAuth
func (h *TeamHandler) HandleDeleteTeam(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teamID, respErr := parseIDParam(ctx, "teamID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), teamID); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotEmpty):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		default:
			err = fmt.Errorf("v1.HandleDeleteTeam -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
