package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/takumi-oki/boardops-api/internal/api/handler/v1/request"
	"github.com/takumi-oki/boardops-api/internal/api/handler/v1/response"
	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/service"
)

type PracticeService interface {
	Create(ctx context.Context, practice domain.Practice, targetGenerations []string) (domain.Practice, int, error)
	List(ctx context.Context) ([]domain.Practice, error)
	Delete(ctx context.Context, id uint) error
	Detail(ctx context.Context, practiceID, viewerID uint) (domain.PracticeDetail, error)
}

type PracticeHandler struct {
	svc  PracticeService
	uSvc UserService
}

func NewPracticeHandler(svc PracticeService, uSvc UserService) *PracticeHandler {
	return &PracticeHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreatePractice godoc
// @Summary      Create a practice and fan out attendance requests
// @Tags         practices
// @Produce      json
// @Param        request  body       request.CreatePracticeRequest true "request body"
// @Success      201      {object}   response.CreatePracticeResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /practices [post]
// @Security BearerAuth
func (h *PracticeHandler) HandleCreatePractice(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreatePracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date format: %v", err)))
		return
	}

	practice, targets, err := h.svc.Create(ctx.Request.Context(), domain.Practice{
		Title:    req.Title,
		Date:     date,
		Location: req.Location,
		TeamID:   req.TeamID,
	}, req.TargetGenerations)
	if err != nil {
		if errors.Is(err, service.ErrNoTargetUsers) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreatePractice -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.CreatePracticeResponse{
		Practice: practice,
		Targets:  targets,
	})
}

// HandleListPractices godoc
// @Summary      List practices, newest date first
// @Tags         practices
// @Produce      json
// @Success      200      {array}    domain.Practice
// @Failure      500      {object}   response.Err
// @Router       /practices [get]
// @Security BearerAuth
func (h *PracticeHandler) HandleListPractices(ctx *gin.Context) {
	practices, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPractices -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, practices)
}

// HandleGetPracticeDetail godoc
// @Summary      Get a practice with every derived view
// @Description  Includes attendee subsets, sessions, transports and the
// @Description  number of boards still to be carried in.
// @Tags         practices
// @Produce      json
// @Param        practiceID  path    int  true  "practice ID"
// @Success      200      {object}   domain.PracticeDetail
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /practices/{practiceID} [get]
// @Security BearerAuth
func (h *PracticeHandler) HandleGetPracticeDetail(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	practiceID, respErr := parseIDParam(ctx, "practiceID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	detail, err := h.svc.Detail(ctx.Request.Context(), practiceID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrPracticeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("practice", "ID", practiceID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPracticeDetail -> h.svc.Detail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleDeletePractice godoc
// @Summary      Delete a practice with its sessions, attendances and transports
// @Tags         practices
// @Produce      json
// @Param        practiceID  path    int  true  "practice ID"
// @Success      204      "no content"
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /practices/{practiceID} [delete]
// @Security BearerAuth
func (h *PracticeHandler) HandleDeletePractice(ctx *gin.Context) {
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

	if err := h.svc.Delete(ctx.Request.Context(), practiceID); err != nil {
		if errors.Is(err, service.ErrPracticeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("practice", "ID", practiceID))
			return
		}

		err = fmt.Errorf("v1.HandleDeletePractice -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
