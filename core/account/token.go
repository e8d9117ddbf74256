package account

import (
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrInvalidToken = errors.New("Invalid token")
	ErrTokenExpired = errors.New("Token has expired")
)

const bearerPrefix = "Bearer "

// TokenIssuer issues and verifies the signed session tokens carried in the
// Authorization header. Tokens embed only the subject id and expiry; roles are
// resolved against the store on every request.
type TokenIssuer struct {
	issuer string
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(conf *core.Config) *TokenIssuer {
	return &TokenIssuer{
		issuer: conf.AppName,
		secret: conf.SecretKey,
		ttl:    conf.Token.TTL,
	}
}

// Issue produces a signed token for the given person id.
func (ti *TokenIssuer) Issue(personID int) (string, error) {
	now := nowFunc()
	claims := jwt.StandardClaims{
		Issuer:    ti.issuer,
		Subject:   strconv.Itoa(personID),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ti.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(ti.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Verify checks the signature and expiry of a raw header value and returns
// the embedded person id. A leading "Bearer " scheme prefix is accepted but
// not required.
func (ti *TokenIssuer) Verify(raw string) (int, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), bearerPrefix))
	if raw == "" {
		return 0, ErrInvalidToken
	}

	claims := new(jwt.StandardClaims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return ti.secret, nil
	})
	if err != nil {
		if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	personID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return personID, nil
}
