package ports

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rinkstats/streaks/internal/domain"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Cause   string `json:"cause"`
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, cause string) {
	// Marshalling a struct of two basic fields can't fail
	marshalled, _ := json.Marshal(errorResponse{Success: false, Cause: cause})
	writeJSONResponse(w, statusCode, marshalled)
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

// invalidParameterCause keeps the stage and parameter context wrapped around domain.ErrInvalidParameter
func invalidParameterCause(err error) string {
	sentinel := domain.ErrInvalidParameter.Error() + ": "
	msg := err.Error()
	if _, detail, found := strings.Cut(msg, sentinel); found && detail != "" {
		return "Invalid parameter: " + detail
	}
	return "Invalid parameter"
}
