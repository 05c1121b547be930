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

type TransportService interface {
	AssignTransport(ctx context.Context, practiceID, carrierID uint, boardIDs []uint, direction domain.TransportDirection) ([]domain.TransportItemResult, error)
	UnassignTransport(ctx context.Context, actor domain.User, transportID uint) (domain.Transport, error)
	RunLottery(ctx context.Context, practiceID uint, boardIDs []uint) (domain.LotteryResult, error)
}

type TransportHandler struct {
	svc  TransportService
	uSvc UserService
}

func NewTransportHandler(svc TransportService, uSvc UserService) *TransportHandler {
	return &TransportHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleAssignTransport godoc
// @Summary      Bind a carrier to boards for one direction
// @Description  Applied board by board; earlier items stand when a later one
// @Description  fails, and each board reports created, rebound, kept or failed.
// @Tags         transports
// @Produce      json
// @Param        practiceID  path    int  true  "practice ID"
// @Param        request  body       request.AssignTransportRequest true "request body"
// @Success      200      {object}   response.AssignTransportResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /practices/{practiceID}/transports [post]
// @Security BearerAuth
func (h *TransportHandler) HandleAssignTransport(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireWriter(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	practiceID, respErr := parseIDParam(ctx, "practiceID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AssignTransportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// Members volunteer themselves; only admins assign someone else.
	if req.UserID != user.ID && !user.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(
			fmt.Errorf("user %v cannot assign transport for user %v", user.ID, req.UserID)))
		return
	}

	results, err := h.svc.AssignTransport(ctx.Request.Context(), practiceID, req.UserID, req.BoardIDs,
		domain.TransportDirection(req.Direction))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrPracticeNotFound):
			response.RenderErr(ctx, response.ErrNotFound("practice", "ID", practiceID))
		case errors.Is(err, service.ErrCarrierNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))
		default:
			err = fmt.Errorf("v1.HandleAssignTransport -> h.svc.AssignTransport -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.AssignTransportResponse{Results: results})
}

// HandleUnassignTransport godoc
// @Summary      Release a transport duty and decrement the carrier's counter
// @Tags         transports
// @Produce      json
// @Param        transportID  path   int  true  "transport ID"
// @Success      200      {object}   domain.Transport
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /transports/{transportID} [delete]
// @Security BearerAuth
func (h *TransportHandler) HandleUnassignTransport(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireWriter(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	transportID, respErr := parseIDParam(ctx, "transportID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	transport, err := h.svc.UnassignTransport(ctx.Request.Context(), user, transportID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransportNotFound):
			response.RenderErr(ctx, response.ErrNotFound("transport", "ID", transportID))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleUnassignTransport -> h.svc.UnassignTransport -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, transport)
}

// HandleRunLottery godoc
// @Summary      Draw return carriers for the given boards
// @Description  Weighted toward attendees who have carried least. Attendees
// @Description  without any duty are drawn first; outbound carriers back-fill
// @Description  when the demand cannot be met otherwise.
// @Tags         transports
// @Produce      json
// @Param        practiceID  path    int  true  "practice ID"
// @Param        request  body       request.RunLotteryRequest true "request body"
// @Success      200      {object}   domain.LotteryResult
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /practices/{practiceID}/transports/lottery [post]
// @Security BearerAuth
func (h *TransportHandler) HandleRunLottery(ctx *gin.Context) {
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

	var req request.RunLotteryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.RunLottery(ctx.Request.Context(), practiceID, req.BoardIDs)
	if err != nil {
		var insufficient *service.InsufficientCandidatesError
		switch {
		case errors.As(err, &insufficient):
			response.RenderErr(ctx, response.ErrConflict(insufficient))
		case errors.Is(err, service.ErrValidation):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrPracticeNotFound):
			response.RenderErr(ctx, response.ErrNotFound("practice", "ID", practiceID))
		default:
			err = fmt.Errorf("v1.HandleRunLottery -> h.svc.RunLottery -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, result)
}
