package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"giftcases-rest-api/pkg/apierror"
)

// Recovery is a middleware that recovers from panics. The client gets a
// generic 500; the stack goes to the log only.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v rid=%s\n%s", err, GetRequestID(r.Context()), debug.Stack())

				writeError(w, apierror.InternalError("internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
