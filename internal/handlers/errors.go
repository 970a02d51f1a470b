package handlers

import (
	"errors"
	"net/http"

	"taskFlow/internal/logger"
	"taskFlow/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError переводит бизнес-ошибку в HTTP-ответ.
// Возвращает false, если ошибка не бизнесовая - тогда её текст
// наружу не уходит, вызывающий отвечает общей фразой
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var bErr *service.BusinessError
	if errors.As(err, &bErr) {
		statusCode := mapBusinessErrorToHTTP(bErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", bErr.Code),
			zap.Int("http_status", statusCode))

		respondError(w, statusCode, bErr.Message)
		return true
	}
	return false
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
