package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/inbound/http/response"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDClaim is the token claim that carries the acting user's id.
const UserIDClaim = "id"

var errNoUserID = errors.New("token carries no usable user id")

// JWTAuth verifies HS256 bearer tokens issued by the account service.
type JWTAuth struct {
	secret []byte
	log    ports.Logger
}

func NewJWTAuth(secret string, log ports.Logger) *JWTAuth {
	return &JWTAuth{
		secret: []byte(secret),
		log:    log,
	}
}

// RequireAuth rejects the request with 401 unless it carries a valid token and
// stores the token's user id in the request context.
func (a *JWTAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w, "missing authorization header")
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			response.Unauthorized(w, "authorization header must be a bearer token")
			return
		}

		userID, err := a.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			a.log.Debug("Token rejected",
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("error", err.Error()))
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// ParseToken verifies the signature and standard time claims and returns the
// user id claim.
func (a *JWTAuth) ParseToken(raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errNoUserID
	}
	return userIDFromClaim(claims[UserIDClaim])
}

func userIDFromClaim(v any) (int64, error) {
	var id int64
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) {
			return 0, errNoUserID
		}
		id = int64(val)
	case string:
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", errNoUserID, err)
		}
		id = parsed
	default:
		return 0, errNoUserID
	}
	if id <= 0 {
		return 0, errNoUserID
	}
	return id, nil
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id and false when the
// request did not pass through RequireAuth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}
