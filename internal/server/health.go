package server

import (
	"net/http"

	"github.com/imageplatform/api/internal/response"
)

// HealthStatus is the fixed health check payload.
type HealthStatus struct {
	Status  string `json:"status"  example:"OK"`
	Message string `json:"message" example:"Image Platform backend is running"`
}

// Health godoc
//
//	@Summary		Health check
//	@Description	Always reports OK while the process is serving; it does not probe object storage.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthStatus
//	@Router			/health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, HealthStatus{
		Status:  "OK",
		Message: "Image Platform backend is running",
	})
}
