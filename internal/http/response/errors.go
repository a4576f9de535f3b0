package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "github.com/yungbote/regula-backend/internal/pkg/errors"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondServiceError writes err using the envelope for its kind. Internal
// errors are not echoed to the client.
func RespondServiceError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)
	body := APIError{Message: err.Error(), Code: string(kind)}
	if ve, ok := apperr.AsValidation(err); ok {
		body.Fields = ve.FieldNames()
	}
	if status == http.StatusInternalServerError {
		body.Message = "internal error"
		_ = c.Error(err)
	}
	c.JSON(status, ErrorEnvelope{Error: body})
}
