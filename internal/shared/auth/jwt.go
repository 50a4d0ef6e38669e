package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Claims is the payload carried by an admin token.
type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
	Iat   int64  `json:"iat"`
}

var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken means the token verified but its exp has passed.
	ErrExpiredToken = errors.New("expired token")
)

// TokenTTL is how long issued admin tokens remain valid.
const TokenTTL = 12 * time.Hour

var configuredSecret []byte

// SetSecret installs the signing secret from configuration. An empty value
// clears it, falling back to the ADMIN_JWT_SECRET environment variable.
func SetSecret(s string) {
	if s == "" {
		configuredSecret = nil
		return
	}
	configuredSecret = []byte(s)
}

func secret() []byte {
	if len(configuredSecret) > 0 {
		return configuredSecret
	}
	if s := os.Getenv("ADMIN_JWT_SECRET"); s != "" {
		return []byte(s)
	}
	// Dev fallback; production deployments must set ADMIN_JWT_SECRET.
	return []byte("dev-secret")
}

func b64(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Sign issues an HS256 token for the given subject and email.
func Sign(sub, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Sub:   sub,
		Email: email,
		Iat:   now.Unix(),
		Exp:   now.Add(TokenTTL).Unix(),
	}
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}
	signingInput := b64(headerJSON) + "." + b64(claimsJSON)
	mac := hmac.New(sha256.New, secret())
	mac.Write([]byte(signingInput))
	return signingInput + "." + b64(mac.Sum(nil)), nil
}

// Verify validates the token signature and expiry and returns its claims.
func Verify(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}
	signingInput := parts[0] + "." + parts[1]
	mac := hmac.New(sha256.New, secret())
	mac.Write([]byte(signingInput))
	expected := b64(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return Claims{}, ErrInvalidToken
	}
	claimsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.Exp > 0 && time.Now().Unix() > claims.Exp {
		return Claims{}, ErrExpiredToken
	}
	return claims, nil
}
