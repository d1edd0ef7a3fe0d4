package api

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/wms-platform/replenishment-service/pkg/errors"
	"github.com/wms-platform/replenishment-service/pkg/middleware"
)

// BindAndValidate binds request body and validates it
func BindAndValidate(c *gin.Context, obj interface{}) *errors.AppError {
	if err := c.ShouldBindJSON(obj); err != nil {
		return bindError("invalid request body", err)
	}
	return nil
}

// BindQueryAndValidate binds query parameters and validates them
func BindQueryAndValidate(c *gin.Context, obj interface{}) *errors.AppError {
	if err := c.ShouldBindQuery(obj); err != nil {
		return bindError("invalid query parameters", err)
	}
	return nil
}

// BindURIAndValidate binds URI parameters and validates them
func BindURIAndValidate(c *gin.Context, obj interface{}) *errors.AppError {
	if err := c.ShouldBindUri(obj); err != nil {
		return bindError("invalid URI parameters", err)
	}
	return nil
}

// ReadBody returns the raw request body. An empty body is a bad request.
func ReadBody(c *gin.Context) ([]byte, *errors.AppError) {
	if c.Request.Body == nil {
		return nil, errors.ErrBadRequest("request body is required")
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errors.ErrBadRequest(fmt.Sprintf("failed to read request body: %v", err))
	}
	if len(body) == 0 {
		return nil, errors.ErrBadRequest("request body is required")
	}
	return body, nil
}

func bindError(prefix string, err error) *errors.AppError {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		return errors.ErrValidationWithFields("validation failed", middleware.ValidationErrorFormatter(validationErrors))
	}
	return errors.ErrBadRequest(fmt.Sprintf("%s: %v", prefix, err))
}
