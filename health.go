package ridelogfilter

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Message: "Backend is running."})
}
