package http

import (
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var kindStatus = map[errs.Kind]int{
	errs.KindNotFound:           http.StatusNotFound,
	errs.KindConflict:           http.StatusConflict,
	errs.KindInvalidInput:       http.StatusBadRequest,
	errs.KindItemUnavailable:    http.StatusUnprocessableEntity,
	errs.KindInvalidTransition:  http.StatusConflict,
	errs.KindPartnerUnavailable: http.StatusConflict,
}

// StatusOf maps an application error to its HTTP status.
func StatusOf(err error) int {
	if status, ok := kindStatus[errs.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(ctx echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}
	return ctx.JSON(status, Error{Code: status, Kind: kind.String(), Message: message})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    errs.KindInvalidInput.String(),
		Message: message,
	})
}
