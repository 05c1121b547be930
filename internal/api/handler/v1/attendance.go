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

type AttendanceService interface {
	RecordResponse(ctx context.Context, actor domain.User, practiceID, userID uint, status domain.AttendanceStatus, reason, notes string) (domain.Attendance, error)
	ListByPractice(ctx context.Context, practiceID uint) ([]domain.Attendance, error)
	Unanswered(ctx context.Context, userID uint) ([]domain.Attendance, error)
}

type AttendanceHandler struct {
	svc  AttendanceService
	uSvc UserService
}

func NewAttendanceHandler(svc AttendanceService, uSvc UserService) *AttendanceHandler {
	return &AttendanceHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleRecordAttendance godoc
// @Summary      Record or change an attendance response
// @Description  Writes the caller's own response, or anyone's when the caller
// @Description  is an admin. An omitted user_id means the caller themselves.
// @Tags         attendances
// @Produce      json
// @Param        practiceID  path    int  true  "practice ID"
// @Param        request  body       request.RecordAttendanceRequest true "request body"
// @Success      200      {object}   domain.Attendance
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /practices/{practiceID}/attendance [put]
// @Security BearerAuth
func (h *AttendanceHandler) HandleRecordAttendance(ctx *gin.Context) {
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

	var req request.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	targetID := req.UserID
	if targetID == 0 {
		targetID = user.ID
	}

	attendance, err := h.svc.RecordResponse(ctx.Request.Context(), user, practiceID, targetID,
		domain.AttendanceStatus(req.Status), req.Reason, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleRecordAttendance -> h.svc.RecordResponse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, attendance)
}

// HandleListAttendances godoc
// @Summary      List a practice's attendance roster
// @Tags         attendances
// @Produce      json
// @Param        practiceID  path    int  true  "practice ID"
// @Success      200      {array}    domain.Attendance
// @Failure      500      {object}   response.Err
// @Router       /practices/{practiceID}/attendances [get]
// @Security BearerAuth
func (h *AttendanceHandler) HandleListAttendances(ctx *gin.Context) {
	practiceID, respErr := parseIDParam(ctx, "practiceID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	attendances, err := h.svc.ListByPractice(ctx.Request.Context(), practiceID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAttendances -> h.svc.ListByPractice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, attendances)
}

// HandleGetDashboard godoc
// @Summary      Pending actions for the caller
// @Tags         attendances
// @Produce      json
// @Success      200      {object}   response.DashboardResponse
// @Failure      500      {object}   response.Err
// @Router       /dashboard [get]
// @Security BearerAuth
func (h *AttendanceHandler) HandleGetDashboard(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	unanswered, err := h.svc.Unanswered(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDashboard -> h.svc.Unanswered -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DashboardResponse{Unanswered: unanswered})
}
