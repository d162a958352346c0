package handlers

import "net/http"

// HomeHandler reports that the service is up.
func HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			respondError(w, "Not found", http.StatusNotFound)
			return
		}
		respondJSON(w, map[string]string{"message": "🌊 Marine Debris Detection API is running!"}, http.StatusOK)
	}
}
