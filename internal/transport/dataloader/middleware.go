package dataloader

import "net/http"

// Middleware gives every request its own Loaders, so a job listing sees
// customer and technician names as of that request and a rename is never
// served from another request's batch.
func Middleware(repos *Repos) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(repos))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
