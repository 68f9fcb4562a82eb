package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apperrors.Envelope {
	t.Helper()
	var envelope apperrors.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestServer_Health(t *testing.T) {
	tests := []struct {
		name           string
		check          HealthCheck
		expectedStatus int
	}{
		{name: "no check", expectedStatus: http.StatusOK},
		{name: "healthy", check: func(context.Context) error { return nil }, expectedStatus: http.StatusOK},
		{name: "database down", check: func(context.Context) error { return errors.New("ping failed") }, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{Port: "0", Timeout: 5}, zap.NewNop())
			s.RegisterHealth(tt.check)

			rec := serve(s, http.MethodGet, "/health")
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestServer_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name            string
		debug           bool
		err             error
		expectedStatus  int
		expectedState   string
		expectedMessage string
	}{
		{
			name:            "domain not found",
			err:             domainErrors.ErrTaskNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedState:   apperrors.StatusFail,
			expectedMessage: domainErrors.ErrTaskNotFound.Message(),
		},
		{
			name:            "access denied",
			err:             domainErrors.ErrAccessDenied,
			expectedStatus:  http.StatusForbidden,
			expectedState:   apperrors.StatusFail,
			expectedMessage: "access denied",
		},
		{
			name:            "storage failure is opaque",
			err:             apperrors.Dependency(errors.New("connection refused"), "failed to load task"),
			expectedStatus:  http.StatusInternalServerError,
			expectedState:   apperrors.StatusError,
			expectedMessage: apperrors.OpaqueMessage,
		},
		{
			name:            "storage failure in debug mode",
			debug:           true,
			err:             apperrors.Dependency(errors.New("connection refused"), "failed to load task"),
			expectedStatus:  http.StatusInternalServerError,
			expectedState:   apperrors.StatusError,
			expectedMessage: "failed to load task: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{Port: "0", Debug: tt.debug}, zap.NewNop())
			s.Router().GET("/fail", func(c echo.Context) error { return tt.err })

			rec := serve(s, http.MethodGet, "/fail")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			envelope := decodeEnvelope(t, rec)
			assert.Equal(t, tt.expectedState, envelope.Status)
			assert.Equal(t, tt.expectedMessage, envelope.Message)
		})
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	s := NewServer(Config{Port: "0"}, zap.NewNop())

	rec := serve(s, http.MethodGet, "/api/v1/nowhere")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.StatusFail, decodeEnvelope(t, rec).Status)
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	assert.NoError(t, v.Validate(&signupRequest{Email: "alice@example.com", Password: "long-enough"}))

	err := v.Validate(&signupRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "password must be at least 8 characters")

	err = v.Validate(&signupRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
}
