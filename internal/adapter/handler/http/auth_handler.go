package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// CookieConfig token cookie attributes
type CookieConfig struct {
	Production bool
	TTL        time.Duration
}

// tokenCookie builds the httpOnly token cookie; maxAge < 0 clears it
func (cfg CookieConfig) tokenCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if cfg.Production {
		sameSite = http.SameSiteStrictMode
	}
	return &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Production,
		SameSite: sameSite,
	}
}

// AuthHandler handles signup, login and account recovery requests
type AuthHandler struct {
	logger *zap.Logger
	auth   interfaces.AuthUseCase
	cookie CookieConfig
	appURL string
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(logger *zap.Logger, auth interfaces.AuthUseCase, cookie CookieConfig, appURL string) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   auth,
		cookie: cookie,
		appURL: appURL,
	}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=56"`
	Name     string `json:"name" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,max=56"`
}

func (h *AuthHandler) setTokenCookie(c echo.Context, result *dto.LoginResult) {
	c.SetCookie(h.cookie.tokenCookie(result.Token, int(h.cookie.TTL.Seconds())))
}

func (h *AuthHandler) clearTokenCookie(c echo.Context) {
	c.SetCookie(h.cookie.tokenCookie("", -1))
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Signup(c.Request().Context(), dto.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}

	return success(c, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, result)
	return success(c, http.StatusOK, toLoginResponse(result))
}

// Logout handles POST /api/v1/auth/logout. It always clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.ExtractToken(c)
	h.clearTokenCookie(c)

	if token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	return success(c, http.StatusOK, MessageResponse{Message: "logged out"})
}

// VerifyEmail handles POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req tokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.VerifyEmail(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "email verified"})
}

// ResendVerification handles POST /api/v1/auth/resend-verification
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req emailRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "if the account exists, a verification email has been sent"})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req emailRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "if the account exists, a password reset email has been sent"})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "password has been reset"})
}

// OAuthStart handles GET /api/v1/auth/oauth/:provider
func (h *AuthHandler) OAuthStart(c echo.Context) error {
	provider := c.Param("provider")

	state, _, err := usecase.GenerateToken()
	if err != nil {
		return apperrors.Wrap(err, "failed to generate oauth state")
	}

	url, err := h.auth.OAuthURL(provider, state)
	if err != nil {
		return err
	}

	if err := middleware.SaveOAuthState(c, state); err != nil {
		return apperrors.Wrap(err, "failed to save oauth state")
	}
	return c.Redirect(http.StatusFound, url)
}

// OAuthCallback handles GET /api/v1/auth/oauth/:provider/callback
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	provider := c.Param("provider")

	if !middleware.ConsumeOAuthState(c, c.QueryParam("state")) {
		h.logger.Warn("OAuth state mismatch",
			zap.String("provider", provider),
			zap.String("ip", c.RealIP()),
		)
		return domainErrors.Validation("invalid oauth state")
	}
	if errParam := c.QueryParam("error"); errParam != "" {
		return apperrors.NewAppError(apperrors.ErrUnauthenticated, "sign in with "+provider+" was cancelled", nil)
	}

	code := c.QueryParam("code")
	if code == "" {
		return domainErrors.Validation("code is required")
	}

	result, err := h.auth.LoginWithProvider(c.Request().Context(), provider, code)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, result)
	return c.Redirect(http.StatusFound, h.appURL)
}
