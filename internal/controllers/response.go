package controllers

import (
	"errors"
	"log/slog"

	"attendance-be/internal/errutil"
	"attendance-be/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError logs err and writes its kind and public message.
func respondError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	errutil.LogError(logger, msg, err)
	kind := errutil.KindOf(err)
	c.JSON(errutil.HTTPStatus(kind), models.ErrorResponse{
		Kind:    string(kind),
		Message: errutil.PublicMessage(err),
	})
}

// bindError turns a request binding failure into an InvalidArgument error.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return errutil.InvalidArgument("All fields are required")
		case "email":
			return errutil.InvalidArgument("Email address is invalid")
		}
	}
	return errutil.InvalidArgument("Invalid request body")
}
