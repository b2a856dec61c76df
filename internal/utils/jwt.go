package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand" // secure random number generation for session ids
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. The token is transported as an http-only cookie
// after a successful login.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// AccountClaims is the decoded, password-free view of a session token. Only
// the fields needed to greet the account and key further requests are
// carried; the password hash is never embedded.
type AccountClaims struct {
	AccountID uint64 // subject of the token
	FirstName string // first name for the management greeting
	Email     string // normalized account email
}

// ErrInvalidToken is returned by ParseSessionToken for any token that is
// expired, tampered with, or signed by a different method or secret.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for an account. It takes the
// signing secret, the account fields safe to embed, and a TTL in minutes.
// The JWT includes standard claims: subject (sub), first_name, email,
// expiration (exp) and issued at (iat).
func NewSessionToken(secret string, accountID uint64, firstName, email string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":        accountID,
		"first_name": firstName,
		"email":      email,
		"exp":        exp.Unix(),
		"iat":        time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates a raw token string and extracts the account
// claims. Expiry is enforced by the jwt library via the exp claim.
func ParseSessionToken(secret, raw string) (AccountClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with a different algorithm.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return AccountClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return AccountClaims{}, ErrInvalidToken
	}
	out := AccountClaims{}
	if sub, ok := claims["sub"].(float64); ok {
		out.AccountID = uint64(sub)
	}
	if v, ok := claims["first_name"].(string); ok {
		out.FirstName = v
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if out.AccountID == 0 {
		return AccountClaims{}, ErrInvalidToken
	}
	return out, nil
}

// RandomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. It is used to mint session ids for
// the flash store cookie.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
