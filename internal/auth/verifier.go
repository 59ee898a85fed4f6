package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clubos/community-backend/internal/config"
)

// ErrUnauthenticated is the single externally observable verification
// failure. Missing, malformed and cryptographically invalid tokens all map
// here so the response leaks nothing about why.
var ErrUnauthenticated = errors.New("invalid or missing credential")

// Verifier checks bearer tokens from the identity provider: HS256 signature,
// expiration with a bounded clock-skew leeway, and a hard time budget so a
// hung verification fails closed instead of holding the request open.
type Verifier struct {
	secret  []byte
	leeway  time.Duration
	timeout time.Duration
}

func NewVerifier(cfg *config.Config) *Verifier {
	return &Verifier{
		secret:  []byte(cfg.JWTSecret),
		leeway:  cfg.AuthLeeway,
		timeout: cfg.AuthTimeout,
	}
}

// Verify returns the token's subject claim, or ErrUnauthenticated.
func (v *Verifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	type outcome struct {
		subject string
		err     error
	}
	ch := make(chan outcome, 1)
	go func() {
		sub, err := v.verify(token)
		ch <- outcome{subject: sub, err: err}
	}()

	select {
	case <-ctx.Done():
		// Neither success nor definitive failure within budget: fail closed.
		return "", ErrUnauthenticated
	case out := <-ch:
		if out.err != nil {
			return "", ErrUnauthenticated
		}
		return out.subject, nil
	}
}

func (v *Verifier) verify(raw string) (string, error) {
	token, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrUnauthenticated
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrUnauthenticated
	}
	return subject, nil
}
