package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/budget-tracker/internal/logging"
)

// Health is the body returned by the status endpoint.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Handler struct {
	Service string
}

func NewHandler(serviceName string) Handler {
	return Handler{Service: serviceName}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	logData.AddData("service", h.Service)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(Health{Status: "healthy", Service: h.Service})
}
