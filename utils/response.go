package utils

import (
	"github.com/gin-gonic/gin"

	"stayafrika-backend/apperrors"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// JSONError maps a domain error onto the standard error body.
func JSONError(c *gin.Context, err error) {
	httpErr := apperrors.MapErrorToHTTP(err)
	c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
