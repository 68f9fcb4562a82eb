package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code         string
		expectedHTTP int
		expectedGRPC codes.Code
	}{
		{code: ErrInvalidArgument, expectedHTTP: http.StatusBadRequest, expectedGRPC: codes.InvalidArgument},
		{code: ErrUnauthenticated, expectedHTTP: http.StatusUnauthorized, expectedGRPC: codes.Unauthenticated},
		{code: ErrUnauthorized, expectedHTTP: http.StatusForbidden, expectedGRPC: codes.PermissionDenied},
		{code: ErrNotFound, expectedHTTP: http.StatusNotFound, expectedGRPC: codes.NotFound},
		{code: ErrConflict, expectedHTTP: http.StatusConflict, expectedGRPC: codes.AlreadyExists},
		{code: ErrDependency, expectedHTTP: http.StatusInternalServerError, expectedGRPC: codes.Unavailable},
		{code: "SOMETHING_ELSE", expectedHTTP: http.StatusInternalServerError, expectedGRPC: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expectedHTTP, ToHTTPStatus(tt.code))
			assert.Equal(t, tt.expectedGRPC, ToGRPCCode(tt.code))
		})
	}
}
