package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

// MaxMultipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files.
const MaxMultipartMemory = 10 << 20

// MultipartDataField carries the JSON part of a multipart request.
const MultipartDataField = "data"

type requestKey struct{}

// AuthenticatedRequest is a request DTO that carries the token triple and
// validates itself.
type AuthenticatedRequest[T any] interface {
	*T
	auth.Credentialed
	Validate() error
}

// Bind decodes the body into T, verifies its token triple and validates it.
// The decoded request is stored in the context for RequestFrom.
func Bind[T any, PT AuthenticatedRequest[T]](verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			req := PT(new(T))

			if err := decode(r, req); err != nil {
				slog.Debug("request decode error", "path", r.URL.Path, "error", err)
				response.BadRequest(w, "Invalid request format", nil)
				return
			}

			if err := verifier.Verify(r.Context(), req.AuthCredentials()); err != nil {
				response.HandleError(w, r, err)
				return
			}

			if err := req.Validate(); err != nil {
				response.HandleError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), requestKey{}, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// RequestFrom returns the request bound by Bind[T].
func RequestFrom[T any](ctx context.Context) (*T, bool) {
	req, ok := ctx.Value(requestKey{}).(*T)
	return req, ok
}

func decode(r *http.Request, dst interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(MaxMultipartMemory); err != nil {
			return err
		}
		return json.Unmarshal([]byte(r.FormValue(MultipartDataField)), dst)
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
