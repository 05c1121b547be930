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

type AnnouncementService interface {
	Create(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error)
	List(ctx context.Context) ([]domain.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type AnnouncementHandler struct {
	svc  AnnouncementService
	uSvc UserService
}

func NewAnnouncementHandler(svc AnnouncementService, uSvc UserService) *AnnouncementHandler {
	return &AnnouncementHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListAnnouncements godoc
// @Summary      List announcements, newest first
// @Tags         announcements
// @Produce      json
// @Success      200      {array}    domain.Announcement
// @Failure      500      {object}   response.Err
// @Router       /announcements [get]
// @Security BearerAuth
func (h *AnnouncementHandler) HandleListAnnouncements(ctx *gin.Context) {
	announcements, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAnnouncements -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, announcements)
}

// HandleCreateAnnouncement godoc
// @Summary      Post an announcement
// @Tags         announcements
// @Produce      json
// @Param        request  body       request.CreateAnnouncementRequest true "request body"
// @Success      201      {object}   domain.Announcement
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /announcements [post]
// @Security BearerAuth
func (h *AnnouncementHandler) HandleCreateAnnouncement(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	announcement, err := h.svc.Create(ctx.Request.Context(), domain.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: user.ID,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateAnnouncement -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, announcement)
}

// HandleDeleteAnnouncement godoc
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Param        announcementID   path   int  true  "announcement ID"
// @Success      204      "no content"
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /announcements/{announcementID} [delete]
// @Security BearerAuth
func (h *AnnouncementHandler) HandleDeleteAnnouncement(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	announcementID, respErr := parseIDParam(ctx, "announcementID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), announcementID); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("announcement", "ID", announcementID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteAnnouncement -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
