package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CursorManager signs pagination cursors so clients cannot forge positions
type CursorManager struct {
	secret []byte
}

// NewCursorManager creates a new cursor manager with a given secret
func NewCursorManager(secret string) *CursorManager {
	return &CursorManager{
		secret: []byte(secret),
	}
}

// EncodeCursor generates a cursor for the given offset, bound to a scope (the listed project)
func (cm *CursorManager) EncodeCursor(scope string, offset int) string {
	cursorData := fmt.Sprintf("%s:%d", scope, offset)
	combined := fmt.Sprintf("%s:%s", cursorData, cm.sign(cursorData))
	return base64.RawURLEncoding.EncodeToString([]byte(combined))
}

// DecodeCursor verifies the signature and scope and returns the offset
func (cm *CursorManager) DecodeCursor(scope, cursor string) (int, error) {
	if cursor == "" {
		return 0, errors.New("empty cursor")
	}

	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor format: %w", err)
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 3 {
		return 0, errors.New("invalid cursor format")
	}

	cursorScope, offsetStr, receivedSig := parts[0], parts[1], parts[2]
	if !hmac.Equal([]byte(cm.sign(cursorScope+":"+offsetStr)), []byte(receivedSig)) {
		return 0, errors.New("cursor tampering detected")
	}
	if cursorScope != scope {
		return 0, errors.New("cursor belongs to a different listing")
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid offset in cursor: %q", offsetStr)
	}
	return offset, nil
}

func (cm *CursorManager) sign(data string) string {
	h := hmac.New(sha256.New, cm.secret)
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
