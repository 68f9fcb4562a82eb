package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestToEnvelope(t *testing.T) {
	dbErr := fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused")

	tests := []struct {
		name            string
		err             error
		debug           bool
		expectedStatus  int
		expectedState   string
		expectedMessage string
	}{
		{
			name:            "client error keeps message",
			err:             NewAppError(ErrNotFound, "task not found", nil),
			expectedStatus:  http.StatusNotFound,
			expectedState:   StatusFail,
			expectedMessage: "task not found",
		},
		{
			name:            "wrapped client error hides cause",
			err:             NewAppError(ErrInvalidArgument, "invalid cursor", dbErr),
			expectedStatus:  http.StatusBadRequest,
			expectedState:   StatusFail,
			expectedMessage: "invalid cursor",
		},
		{
			name:            "dependency error is opaque",
			err:             Dependency(dbErr, "failed to load task"),
			expectedStatus:  http.StatusInternalServerError,
			expectedState:   StatusError,
			expectedMessage: OpaqueMessage,
		},
		{
			name:            "dependency error in debug mode",
			err:             Dependency(dbErr, "failed to load task"),
			debug:           true,
			expectedStatus:  http.StatusInternalServerError,
			expectedState:   StatusError,
			expectedMessage: "failed to load task: " + dbErr.Error(),
		},
		{
			name:            "echo error",
			err:             echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"),
			expectedStatus:  http.StatusMethodNotAllowed,
			expectedState:   StatusFail,
			expectedMessage: "method not allowed",
		},
		{
			name:            "plain error",
			err:             dbErr,
			expectedStatus:  http.StatusInternalServerError,
			expectedState:   StatusError,
			expectedMessage: OpaqueMessage,
		},
		{
			name:            "conflict",
			err:             Wrap(NewAppError(ErrConflict, "already a member", nil), "already a member"),
			expectedStatus:  http.StatusConflict,
			expectedState:   StatusFail,
			expectedMessage: "already a member",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := ToEnvelope(tt.err, tt.debug)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedState, envelope.Status)
			assert.Equal(t, tt.expectedMessage, envelope.Message)
			assert.Nil(t, envelope.Data)
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrDependency, CodeOf(Dependency(New("boom"), "failed")))
	assert.Equal(t, ErrNotFound, CodeOf(fmt.Errorf("lookup: %w", NewAppError(ErrNotFound, "missing", nil))))
	assert.Equal(t, ErrInternal, CodeOf(New("boom")))
	assert.Nil(t, Dependency(nil, "failed"))
}

func TestFromHTTPError(t *testing.T) {
	err := FromHTTPError(echo.NewHTTPError(http.StatusRequestEntityTooLarge, "body too large"))
	assert.Equal(t, ErrInvalidArgument, CodeOf(err))

	err = FromHTTPError(echo.ErrUnauthorized)
	assert.Equal(t, ErrUnauthenticated, CodeOf(err))
}
