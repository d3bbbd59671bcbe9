package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skva/kasse/models"
	"github.com/skva/kasse/services"
	"github.com/skva/kasse/utils"
)

// respondServiceError maps engine errors onto the error taxonomy: validation
// and illegal transitions are 400, missing rows 404, everything else a
// logged 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	var tErr *models.TransitionError

	switch {
	case errors.As(err, &vErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &tErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, errors.New("not found"))
	default:
		utils.ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
