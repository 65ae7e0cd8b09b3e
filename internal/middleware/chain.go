package middleware

import "net/http"

// Chain wraps h so that middlewares run first to last on each request.
//
//	handler := Chain(mux,
//	    RequestID,      // outermost
//	    RequestLogging, // sees the request id
//	    AuthMiddleware(authService),
//	)
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
