package handler

import (
	"net/http"
)

const helloMessage = "Hello from AWS Lambda + chi!"

// HealthHandler handles the greeting and health-check endpoints.
type HealthHandler struct {
	version string
}

func NewHealthHandler(version string) *HealthHandler { return &HealthHandler{version: version} }

func (h *HealthHandler) Hello(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, http.StatusOK, msgSuccess, map[string]string{"message": helloMessage})
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, http.StatusOK, msgSuccess, map[string]string{"status": "ok", "version": h.version})
}
