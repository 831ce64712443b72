package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`

	err error
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.Error(e.err),
		)
	}

	ctx.JSON(e.StatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
		err:        err,
	}
}

func ErrNotFound(message string) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Message:    err.Error(),
		err:        err,
	}
}

func ErrUnauthorized() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    "invalid or expired token",
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    err.Error(),
		err:        err,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
		err:        err,
	}
}
