package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// NewHttpError returns an HTTP error with the given status. If msgOrErr is an
// error it becomes the internal error and its text the message.
func NewHttpError(code int, msgOrErr any) *echo.HTTPError {
	if err, ok := msgOrErr.(error); ok {
		return &echo.HTTPError{Code: code, Message: err.Error(), Internal: err}
	}
	return &echo.HTTPError{Code: code, Message: msgOrErr}
}

func NewHttpErrorWithInternal(code int, msgOrErr any, internal error) *echo.HTTPError {
	return &echo.HTTPError{Code: code, Message: msgOrErr, Internal: internal}
}

func NewBadRequestError(err error) *echo.HTTPError {
	return NewHttpError(http.StatusBadRequest, err)
}
