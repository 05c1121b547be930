package v1

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/takumi-oki/boardops-api/internal/api/handler/v1/response"
	"github.com/takumi-oki/boardops-api/internal/api/middleware"
	"github.com/takumi-oki/boardops-api/internal/domain"
)

// UserService resolves the authenticated caller for handlers behind the JWT
// middleware.
type UserService interface {
	Get(ctx context.Context, id uint) (domain.User, error)
}

func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	raw, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized("not authenticated")
	}

	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return domain.User{}, response.ErrUnauthorized("not authenticated")
	}

	user, err := svc.Get(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrUnauthorized("unknown user")
	}

	return user, nil
}

// requireAdmin gates the management endpoints.
func requireAdmin(user domain.User) *response.Err {
	if !user.IsAdmin() {
		return response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID))
	}

	return nil
}

// requireWriter rejects the shared guest account; everything else may write.
func requireWriter(user domain.User) *response.Err {
	if user.Role == domain.RoleGuest {
		return response.ErrPermissionDenied(fmt.Errorf("guest account is read-only"))
	}

	return nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v", name))
	}

	return uint(id), nil
}
