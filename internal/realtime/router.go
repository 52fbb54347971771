package realtime

import (
	"net/http"
)

// Route binds a websocket feed endpoint.
type Route struct {
	Path    string
	Handler http.Handler
}

// NewRouter builds the realtime listener: a health probe plus the feed routes.
func NewRouter(routes ...Route) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	for _, rt := range routes {
		mux.Handle(rt.Path, rt.Handler)
	}
	return mux
}
