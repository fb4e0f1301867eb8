package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("openapi document is invalid: %w", err)
	}
	return doc, nil
}

// swaggerDoc serves the embedded document to echo-swagger through the swag registry.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// registerSwaggerDoc registers doc under swag.Name. swag panics on a second
// registration, so only the first document is kept.
func registerSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode openapi document: %w", err)
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}

// requestValidator rejects requests to documented routes that do not match
// the document. Undocumented routes such as /health pass through.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if isMethodNotAllowed(err) {
					return c.JSON(http.StatusMethodNotAllowed, newErrorResponse(http.StatusMethodNotAllowed, err.Error()))
				}
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, validationMessage(err)))
			}

			return next(c)
		}
	}, nil
}

// RouteError carries the router sentinel only as its Reason text.
func isMethodNotAllowed(err error) bool {
	var routeErr *routers.RouteError
	if errors.As(err, &routeErr) {
		return routeErr.Reason == routers.ErrMethodNotAllowed.Error()
	}
	return errors.Is(err, routers.ErrMethodNotAllowed)
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return "request is invalid"
	}
	switch {
	case reqErr.Parameter != nil:
		return fmt.Sprintf("parameter %q is invalid", reqErr.Parameter.Name)
	case reqErr.RequestBody != nil && reqErr.Err != nil:
		return "request body is invalid: " + reqErr.Err.Error()
	default:
		return "request is invalid"
	}
}
