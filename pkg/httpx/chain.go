package httpx

import "net/http"

// Middleware decorates an http.Handler with cross-cutting behaviour.
type Middleware func(http.Handler) http.Handler

// Chain wraps h in the given middlewares. The first middleware listed becomes
// the outermost wrapper, so it sees the request first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
