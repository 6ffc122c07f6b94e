package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTokenInvalid = errors.New("invalid image token")
	ErrTokenExpired = errors.New("image token expired")
)

// SignedURLSigner issues short-lived tokens that let the browser fetch an event image without a session header.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate returns `<base64 key>.<unix expiry>.<hex hmac>` for the storage key.
func (s *SignedURLSigner) Generate(key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, fmt.Errorf("key required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	encodedKey := base64.RawURLEncoding.EncodeToString([]byte(key))
	ts := strconv.FormatInt(expiresAt.Unix(), 10)
	return strings.Join([]string{encodedKey, ts, s.sign(encodedKey, ts)}, "."), expiresAt, nil
}

// Parse validates the token and returns the storage key it grants.
func (s *SignedURLSigner) Parse(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrTokenInvalid
	}
	encodedKey, ts, signature := parts[0], parts[1], parts[2]
	if !hmac.Equal([]byte(s.sign(encodedKey, ts)), []byte(signature)) {
		return "", ErrTokenInvalid
	}
	expUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", ErrTokenInvalid
	}
	if s.now().After(time.Unix(expUnix, 0)) {
		return "", ErrTokenExpired
	}
	rawKey, err := base64.RawURLEncoding.DecodeString(encodedKey)
	if err != nil {
		return "", ErrTokenInvalid
	}
	return string(rawKey), nil
}

func (s *SignedURLSigner) sign(encodedKey, ts string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(encodedKey + "|" + ts))
	return hex.EncodeToString(mac.Sum(nil))
}
