package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/platform/httpx"
	"cyber-kittens/internal/platform/logger"
)

// Recover es el handler terminal: cualquier panic se loguea con stack
// y se responde 500 con el cuerpo de error estándar.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// http.ErrAbortHandler se re-lanza (lo maneja net/http).
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered", map[string]any{
				"panic": fmt.Sprint(rec),
				"stack": string(debug.Stack()),
			})

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			httpx.WriteError(w, r, apperr.Wrap(apperr.KindInternal, "panic", err))
		}()

		next.ServeHTTP(w, r)
	})
}
