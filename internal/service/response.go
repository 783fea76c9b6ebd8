package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
)

// Response is the uniform JSON envelope for every endpoint.
type Response struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   data,
	})
}

func RespondOKWithMsg(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusOK, &Response{
		Status:  "success",
		Code:    http.StatusOK,
		Message: msg,
		Data:    data,
	})
}

// AbortWithError writes an error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, httpCode int, message string) {
	c.AbortWithStatusJSON(httpCode, &Response{
		Status:  "error",
		Code:    httpCode,
		Message: message,
	})
}

// RespondLogicError maps the logic layer's sentinel errors onto HTTP codes.
// Anything unrecognized is a storage or infrastructure failure and stays a
// plain 500 without leaking details.
func RespondLogicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrValidation):
		AbortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrInvalidCredential):
		AbortWithError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, logic.ErrForbidden):
		AbortWithError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, logic.ErrRecordNotFound),
		errors.Is(err, logic.ErrChangeNotFound),
		errors.Is(err, logic.ErrNotificationNotFound),
		errors.Is(err, logic.ErrUserNotFound):
		AbortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrInvalidState),
		errors.Is(err, logic.ErrEditConflict):
		AbortWithError(c, http.StatusConflict, err.Error())
	default:
		AbortWithError(c, http.StatusInternalServerError, "internal error")
	}
}
