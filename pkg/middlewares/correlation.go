package middlewares

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

var correlationIDRegexp = regexp.MustCompile(`^[\w-]{3,40}$`)

type CorrelationMw struct {
	headerName string
	next       http.Handler
}

func NewCorrelationMw(headerName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return NewCorrelation(headerName, next)
	}
}

func NewCorrelation(headerName string, next http.Handler) *CorrelationMw {
	return &CorrelationMw{headerName: headerName, next: next}
}

// ServeHTTP propagates a caller-supplied correlation id, minting one
// when the request has none, and makes it available to downstream
// logging via the request context.
func (mw *CorrelationMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(mw.headerName)
	if !correlationIDRegexp.MatchString(id) {
		id = uuid.New().String()
	}

	rw.Header().Set(mw.headerName, id)

	ctx := logging.WithCorrelationID(r.Context(), id)
	mw.next.ServeHTTP(rw, r.WithContext(ctx))
}
