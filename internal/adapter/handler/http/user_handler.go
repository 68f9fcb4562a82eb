package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// UserHandler handles requests about the authenticated user
type UserHandler struct {
	logger *zap.Logger
	auth   interfaces.AuthUseCase
	cookie CookieConfig
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(logger *zap.Logger, auth interfaces.AuthUseCase, cookie CookieConfig) *UserHandler {
	return &UserHandler{
		logger: logger,
		auth:   auth,
		cookie: cookie,
	}
}

type updateProfileRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,max=56"`
}

// Me handles GET /api/v1/me
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.auth.Me(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PATCH /api/v1/me
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), middleware.UserID(c), dto.UpdateProfileParams{
		Name: req.Name,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toUserResponse(user))
}

// ChangePassword handles PUT /api/v1/me/password.
// Older tokens stop working, so the replacement token is set as the new cookie.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.ChangePassword(c.Request().Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie.tokenCookie(result.Token, int(h.cookie.TTL.Seconds())))
	return success(c, http.StatusOK, toLoginResponse(result))
}

// UploadAvatar handles PUT /api/v1/me/avatar
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	upload, closer, err := readImage(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	user, err := h.auth.UploadAvatar(c.Request().Context(), middleware.UserID(c), upload)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toUserResponse(user))
}

// DeleteAccount handles DELETE /api/v1/me
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID := middleware.UserID(c)
	if err := h.auth.DeleteAccount(c.Request().Context(), userID); err != nil {
		return err
	}

	_ = h.auth.Logout(c.Request().Context(), middleware.AccessToken(c))
	c.SetCookie(h.cookie.tokenCookie("", -1))

	h.logger.Info("Account deleted", zap.String("user_id", userID))
	return success(c, http.StatusOK, MessageResponse{Message: "account deleted"})
}
