package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
)

// errorResponse maps an analysis error to its HTTP status and JSON body.
func errorResponse(err error) (int, gin.H) {
	body := gin.H{
		"status": string(constants.RunStatusFailed),
		"error":  common.UserMessage(err),
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		body["code"] = appErr.Code
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		body["code"] = common.CodeInvalidInput
		body["error"] = "Erro ao processar: arquivo excede o tamanho permitido"
		return http.StatusRequestEntityTooLarge, body
	case errors.Is(err, common.ErrExtractionEmpty):
		body["status"] = string(constants.RunStatusEmpty)
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, common.ErrParse),
		errors.Is(err, common.ErrSchemaMismatch),
		errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, body
	default:
		return http.StatusInternalServerError, body
	}
}
