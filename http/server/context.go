package server

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Context struct {
	echo.Context
	Validator          *validator.Validate
	ConfigRaw          any
	ServerLoggerWriter io.Writer
	ServerLogger       *zerolog.Logger
}

func GetContext(c echo.Context) *Context {
	return c.(*Context)
}

func (c *Context) Logger() echo.Logger {
	return newGommonLogger(c.ServerLogger, c.ServerLoggerWriter)
}

// BindValid binds the request into i and validates it. Both failures are
// reported as 400 errors.
func (c *Context) BindValid(i any) error {
	if err := c.Bind(i); err != nil {
		return err
	}
	return c.Validate(i)
}

type structValidator struct {
	validate *validator.Validate
}

func (v *structValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return NewBadRequestError(err)
	}
	return nil
}
