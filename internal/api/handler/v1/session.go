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

type SessionService interface {
	AddSession(ctx context.Context, practiceID uint) (domain.Session, error)
	AssignMembers(ctx context.Context, sessionID uint, userIDs []uint) ([]string, error)
	UnassignMember(ctx context.Context, sessionID, userID uint) error
	DeleteSession(ctx context.Context, sessionID uint) (domain.Session, error)
	Unassigned(ctx context.Context, practiceID uint) ([]domain.User, error)
}

type SessionHandler struct {
	svc  SessionService
	uSvc UserService
}

func NewSessionHandler(svc SessionService, uSvc UserService) *SessionHandler {
	return &SessionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleAddSession godoc
// @Summary      Append a session to a practice
// @Tags         sessions
// @Produce      json
// @Param        practiceID  path    int  true  "practice ID"
// @Success      201      {object}   domain.Session
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /practices/{practiceID}/sessions [post]
// @Security BearerAuth
func (h *SessionHandler) HandleAddSession(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	practiceID, respErr := parseIDParam(ctx, "practiceID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	session, err := h.svc.AddSession(ctx.Request.Context(), practiceID)
	if err != nil {
		if errors.Is(err, service.ErrPracticeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("practice", "ID", practiceID))
			return
		}

		err = fmt.Errorf("v1.HandleAddSession -> h.svc.AddSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleAssignMembers godoc
// @Summary      Add users to a session
// @Description  Users already in the session and unknown ids are skipped; the
// @Description  response names the users actually added.
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path     int  true  "session ID"
// @Param        request  body       request.AssignMembersRequest true "request body"
// @Success      200      {object}   response.AssignMembersResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/members [post]
// @Security BearerAuth
func (h *SessionHandler) HandleAssignMembers(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AssignMembersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	added, err := h.svc.AssignMembers(ctx.Request.Context(), sessionID, req.UserIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
		default:
			err = fmt.Errorf("v1.HandleAssignMembers -> h.svc.AssignMembers -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.AssignMembersResponse{Added: added})
}

// HandleUnassignMember godoc
// @Summary      Remove a user from a session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path     int  true  "session ID"
// @Param        userID     path     int  true  "user ID"
// @Success      204      "no content"
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/members/{userID} [delete]
// @Security BearerAuth
func (h *SessionHandler) HandleUnassignMember(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.UnassignMember(ctx.Request.Context(), sessionID, userID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleUnassignMember -> h.svc.UnassignMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteSession godoc
// @Summary      Delete a session; its members keep their attendance records
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path     int  true  "session ID"
// @Success      204      "no content"
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID} [delete]
// @Security BearerAuth
func (h *SessionHandler) HandleDeleteSession(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if _, err := h.svc.DeleteSession(ctx.Request.Context(), sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteSession -> h.svc.DeleteSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetUnassigned godoc
// @Summary      List assignable attendees not yet in any session
// @Tags         sessions
// @Produce      json
// @Param        practiceID  path    int  true  "practice ID"
// @Success      200      {object}   response.UnassignedResponse
// @Failure      500      {object}   response.Err
// @Router       /practices/{practiceID}/unassigned [get]
// @Security BearerAuth
func (h *SessionHandler) HandleGetUnassigned(ctx *gin.Context) {
	practiceID, respErr := parseIDParam(ctx, "practiceID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	users, err := h.svc.Unassigned(ctx.Request.Context(), practiceID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUnassigned -> h.svc.Unassigned -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UnassignedResponse{Users: users})
}
