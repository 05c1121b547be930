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

type BoardService interface {
	Create(ctx context.Context, board domain.Board) (domain.Board, error)
	Get(ctx context.Context, id uint) (domain.Board, error)
	List(ctx context.Context) ([]domain.Board, map[string]int, error)
	Update(ctx context.Context, board domain.Board) (domain.Board, error)
	BulkRelocate(ctx context.Context, boardIDs []uint, location, updatedBy string) (int, error)
	Delete(ctx context.Context, id uint) error
	Histories(ctx context.Context, boardID uint) ([]domain.UpdateHistory, error)
}

type BoardHandler struct {
	svc  BoardService
	uSvc UserService
}

func NewBoardHandler(svc BoardService, uSvc UserService) *BoardHandler {
	return &BoardHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListBoards godoc
// @Summary      List boards in natural name order with per-location counts
// @Tags         boards
// @Produce      json
// @Success      200      {object}   response.BoardListResponse
// @Failure      500      {object}   response.Err
// @Router       /boards [get]
// @Security BearerAuth
func (h *BoardHandler) HandleListBoards(ctx *gin.Context) {
	boards, counts, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListBoards -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.BoardListResponse{
		Boards:         boards,
		LocationCounts: counts,
	})
}

// HandleGetBoard godoc
// @Summary      Get a board by ID
// @Tags         boards
// @Produce      json
// @Param        boardID  path       int  true  "board ID"
// @Success      200      {object}   domain.Board
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /boards/{boardID} [get]
// @Security BearerAuth
func (h *BoardHandler) HandleGetBoard(ctx *gin.Context) {
	boardID, respErr := parseIDParam(ctx, "boardID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	board, err := h.svc.Get(ctx.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, service.ErrBoardNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("board", "ID", boardID))
			return
		}

		err = fmt.Errorf("v1.HandleGetBoard -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// HandleCreateBoard godoc
// @Summary      Register a board
// @Tags         boards
// @Produce      json
// @Param        request  body       request.CreateBoardRequest true "request body"
// @Success      201      {object}   domain.Board
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /boards [post]
// @Security BearerAuth
func (h *BoardHandler) HandleCreateBoard(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireWriter(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateBoardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	board, err := h.svc.Create(ctx.Request.Context(), domain.Board{
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Location:     req.Location,
		Notes:        req.Notes,
		UpdatedBy:    user.Username,
	})
	if err != nil {
		if errors.Is(err, service.ErrBoardNameExists) || errors.Is(err, service.ErrSerialNumberUsed) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateBoard -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, board)
}

// HandleUpdateBoard godoc
// @Summary      Update a board; location changes are recorded in its history
// @Tags         boards
// @Produce      json
// @Param        boardID  path       int  true  "board ID"
// @Param        request  body       request.UpdateBoardRequest true "request body"
// @Success      200      {object}   domain.Board
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /boards/{boardID} [put]
// @Security BearerAuth
func (h *BoardHandler) HandleUpdateBoard(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireWriter(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	boardID, respErr := parseIDParam(ctx, "boardID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateBoardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	board, err := h.svc.Update(ctx.Request.Context(), domain.Board{
		ID:           boardID,
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Location:     req.Location,
		Notes:        req.Notes,
		UpdatedBy:    user.Username,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBoardNotFound):
			response.RenderErr(ctx, response.ErrNotFound("board", "ID", boardID))
		case errors.Is(err, service.ErrBoardNameExists), errors.Is(err, service.ErrSerialNumberUsed):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateBoard -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// HandleRelocateBoards godoc
// @Summary      Move several boards to one location
// @Tags         boards
// @Produce      json
// @Param        request  body       request.RelocateBoardsRequest true "request body"
// @Success      200      {object}   response.RelocateBoardsResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /boards/relocate [post]
// @Security BearerAuth
func (h *BoardHandler) HandleRelocateBoards(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireWriter(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RelocateBoardsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	moved, err := h.svc.BulkRelocate(ctx.Request.Context(), req.BoardIDs, req.Location, user.Username)
	if err != nil {
		err = fmt.Errorf("v1.HandleRelocateBoards -> h.svc.BulkRelocate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.RelocateBoardsResponse{Moved: moved})
}

// HandleDeleteBoard godoc
// @Summary      Delete a board and its history
// @Tags         boards
// @Produce      json
// @Param        boardID  path       int  true  "board ID"
// @Success      204      "no content"
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /boards/{boardID} [delete]
// @Security BearerAuth
func (h *BoardHandler) HandleDeleteBoard(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	boardID, respErr := parseIDParam(ctx, "boardID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), boardID); err != nil {
		if errors.Is(err, service.ErrBoardNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("board", "ID", boardID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteBoard -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetBoardHistories godoc
// @Summary      List a board's location changes, newest first
// @Tags         boards
// @Produce      json
// @Param        boardID  path       int  true  "board ID"
// @Success      200      {array}    domain.UpdateHistory
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /boards/{boardID}/histories [get]
// @Security BearerAuth
func (h *BoardHandler) HandleGetBoardHistories(ctx *gin.Context) {
	boardID, respErr := parseIDParam(ctx, "boardID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	histories, err := h.svc.Histories(ctx.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, service.ErrBoardNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("board", "ID", boardID))
			return
		}

		err = fmt.Errorf("v1.HandleGetBoardHistories -> h.svc.Histories -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, histories)
}
