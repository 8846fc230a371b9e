package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/apistarter/pkg/api"
)

// WriteSuccess отправляет успешный ответ в едином конверте
// HTTP статус всегда совпадает с полем code конверта
func WriteSuccess(w http.ResponseWriter, logger *slog.Logger, message string, data any, code int) {
	writeEnvelope(w, logger, api.Response{
		Status:  api.StatusSuccess,
		Message: message,
		Data:    data,
		Errors:  []api.FieldError{},
		Code:    code,
	})
}

// WriteError отправляет ответ с ошибкой в едином конверте
func WriteError(w http.ResponseWriter, logger *slog.Logger, message string, errs []api.FieldError, code int) {
	if errs == nil {
		errs = []api.FieldError{}
	}
	writeEnvelope(w, logger, api.Response{
		Status:  api.StatusError,
		Message: message,
		Data:    nil,
		Errors:  errs,
		Code:    code,
	})
}

func writeEnvelope(w http.ResponseWriter, logger *slog.Logger, resp api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}
