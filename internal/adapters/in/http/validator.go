package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// RequestValidator rejects requests that do not match the contract before
// they reach a handler. Requests for paths the contract does not describe
// (health, swagger) pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return ctx.JSON(http.StatusMethodNotAllowed, Error{
						Code:    http.StatusMethodNotAllowed,
						Kind:    errs.KindInvalidInput.String(),
						Message: findErr.Error(),
					})
				}
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return ctx.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Kind:    errs.KindInvalidInput.String(),
					Message: validationMessage(validateErr),
				})
			}
			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		if requestErr.Parameter != nil {
			return "parameter " + requestErr.Parameter.Name + ": " + requestErr.Reason
		}
		if requestErr.Err != nil {
			return "request body: " + requestErr.Err.Error()
		}
	}
	return err.Error()
}
