package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jroosing/hydrazone/internal/api/models"
	"github.com/jroosing/hydrazone/internal/zone"
)

// respondError maps a domain error onto an HTTP status.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		ve *zone.ValidationError
		ce *zone.ConflictError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &ce):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, zone.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not Found"})
	case errors.Is(err, zone.ErrZoneExists):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Conflict: " + err.Error()})
	default:
		h.logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}
}

// respondBindError separates malformed JSON (400) from well-formed bodies
// that fail binding rules (422).
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: verrs.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid JSON body: " + err.Error()})
}
