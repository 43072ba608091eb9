// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/services"
	"github.com/javajoker/provenance-backend/internal/utils"
)

// respondError writes err as an {"error": ...} body in the request language.
// Internal failures carry the cause text in their message.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError, err.Error()))
		return
	}

	switch svcErr.Kind {
	case services.ErrorKindBadRequest:
		utils.BadRequestResponse(c, i18n.T(lang, svcErr.Key))
	case services.ErrorKindNotFound:
		utils.NotFoundResponse(c, i18n.T(lang, svcErr.Key))
	default:
		cause := "unknown error"
		if svcErr.Err != nil {
			cause = svcErr.Err.Error()
		}
		logrus.WithError(svcErr.Err).WithFields(logrus.Fields{
			"path": c.Request.URL.Path,
			"key":  svcErr.Key,
		}).Error("Request failed")
		_ = c.Error(svcErr)
		utils.ErrorResponse(c, http.StatusInternalServerError, i18n.T(lang, svcErr.Key, cause))
	}
}

func respondMessage(c *gin.Context, key string) {
	utils.MessageResponse(c, i18n.T(utils.GetLangFromContext(c), key))
}
