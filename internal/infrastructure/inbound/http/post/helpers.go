package post_http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"devlog-post-service/internal/custom_errors"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/inbound/http/middleware"
	"devlog-post-service/internal/infrastructure/inbound/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads exactly one JSON object and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func pathID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", param)
	}
	return id, nil
}

func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

func queryString(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	v := r.URL.Query().Get(key)
	return &v
}

// currentUser returns the authenticated user id, writing 401 when the route
// was mounted without RequireAuth.
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
	}
	return userID, ok
}

// writeServiceError maps service sentinels to status codes. Anything
// unrecognised is logged and answered with a fixed 500 body.
func writeServiceError(w http.ResponseWriter, log ports.Logger, op string, err error) {
	switch {
	case errors.Is(err, custom_errors.ErrPostValidation),
		errors.Is(err, custom_errors.ErrInvalidVoteDirection):
		log.Debug(op+" rejected", slog.String("error", err.Error()))
		response.BadRequest(w, err.Error())
	case errors.Is(err, custom_errors.ErrPostNotFound):
		response.WriteError(w, http.StatusNotFound, response.KindNotFound, "post not found")
	case errors.Is(err, custom_errors.ErrCommentNotFound):
		response.WriteError(w, http.StatusNotFound, response.KindNotFound, "comment reference not found")
	case errors.Is(err, custom_errors.ErrForbidden):
		response.WriteError(w, http.StatusForbidden, response.KindForbidden, "only the author can modify this post")
	default:
		log.Error(op+" failed", slog.String("error", err.Error()))
		response.Internal(w)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
