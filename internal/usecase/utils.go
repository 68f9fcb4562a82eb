package usecase

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"
)

// ID prefixes per entity
const (
	PrefixUser       = "US"
	PrefixWorkspace  = "WS"
	PrefixMember     = "WM"
	PrefixInvite     = "IV"
	PrefixProject    = "PJ"
	PrefixTask       = "TK"
	PrefixComment    = "CM"
	PrefixAttachment = "AT"
	PrefixAuditLog   = "AL"
)

const (
	tokenBytes = 32
	saltBytes  = 12

	// MaxPasswordLength keeps password+salt inside bcrypt's 72 byte input limit
	MaxPasswordLength = 56
)

// GenerateUniqueID creates an ID with the following pattern:
//   - the two letter entity prefix
//   - followed by 2 random digits [0-9]
//   - followed by 9 random alphanumeric [0-9a-z]
//
// The result is upper-cased, e.g. TK07X1Y2Z3A4B.
func GenerateUniqueID(prefix string) (string, error) {
	twoDigits, err := gonanoid.Generate("0123456789", 2)
	if err != nil {
		return "", fmt.Errorf("failed to generate two digits: %w", err)
	}

	nineAlnum, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 9)
	if err != nil {
		return "", fmt.Errorf("failed to generate alphanumeric part: %w", err)
	}

	return strings.ToUpper(prefix + twoDigits + nineAlnum), nil
}

// GenerateToken returns a URL-safe random token and its storage hash.
// Only the hash is ever persisted.
func GenerateToken() (token string, hash string, err error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(raw)
	return token, HashToken(token), nil
}

// HashToken returns the hex encoded SHA-256 of a plaintext token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// HashPassword hashes password+salt with bcrypt and returns both
func HashPassword(password string, cost int) (hashedPassword string, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = base64.RawStdEncoding.EncodeToString(raw)

	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password+salt), cost)
	if err != nil {
		return "", "", err
	}

	return string(hash), salt, nil
}

// VerifyPassword checks a password against the stored hash and salt
func VerifyPassword(hashedPassword, inputPassword, salt string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(inputPassword+salt))
}

var dummyCredentials struct {
	once sync.Once
	hash string
	salt string
}

// dummyPassword returns a fixed hash used when the account does not exist,
// so a failed login costs the same bcrypt work as a real one.
func dummyPassword() (hash, salt string) {
	dummyCredentials.once.Do(func() {
		h, s, err := HashPassword("taskboard-dummy-password", bcrypt.DefaultCost)
		if err != nil {
			// bcrypt only fails on oversized input or a broken random source
			panic(err)
		}
		dummyCredentials.hash, dummyCredentials.salt = h, s
	})
	return dummyCredentials.hash, dummyCredentials.salt
}

// ExtractUsernameFromEmail returns the local part of an email address
func ExtractUsernameFromEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}
