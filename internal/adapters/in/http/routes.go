package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CreateOrderParams defines parameters for CreateOrder.
type CreateOrderParams struct {
	IdempotencyKey *string
}

// ServerInterface represents all server handlers of api/openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/users)
	RegisterUser(ctx echo.Context) error
	// (GET /api/v1/users/{userId}/orders)
	ListUserOrders(ctx echo.Context, userId openapi_types.UUID) error
	// (POST /api/v1/restaurants)
	RegisterRestaurant(ctx echo.Context) error
	// (GET /api/v1/restaurants/{restaurantId}/orders)
	ListRestaurantOrders(ctx echo.Context, restaurantId openapi_types.UUID) error
	// (GET /api/v1/restaurants/{restaurantId}/menu)
	GetRestaurantMenu(ctx echo.Context, restaurantId openapi_types.UUID) error
	// (POST /api/v1/restaurants/{restaurantId}/categories)
	AddCategory(ctx echo.Context, restaurantId openapi_types.UUID) error
	// (PUT /api/v1/restaurants/{restaurantId}/categories/{categoryId}/window)
	UpdateCategoryWindow(ctx echo.Context, restaurantId, categoryId openapi_types.UUID) error
	// (POST /api/v1/restaurants/{restaurantId}/menu-items)
	AddMenuItem(ctx echo.Context, restaurantId openapi_types.UUID) error
	// (PATCH /api/v1/restaurants/{restaurantId}/menu-items/{menuItemId})
	UpdateMenuItem(ctx echo.Context, restaurantId, menuItemId openapi_types.UUID) error
	// (POST /api/v1/partners)
	RegisterPartner(ctx echo.Context) error
	// (GET /api/v1/partners/available)
	ListAvailablePartners(ctx echo.Context) error
	// (GET /api/v1/partners/{partnerId}/orders)
	ListPartnerOrders(ctx echo.Context, partnerId openapi_types.UUID) error
	// (GET /api/v1/profiles/{role}/{accountId})
	GetProfile(ctx echo.Context, role string, accountId openapi_types.UUID) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// (GET /api/v1/orders/active)
	ListActiveOrders(ctx echo.Context) error
	// (POST /api/v1/orders/dispatch)
	DispatchPendingOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /api/v1/orders/{orderId}/status)
	SetOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/assignment)
	AssignPartner(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId}/bill)
	GenerateBill(ctx echo.Context, orderId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func (w *ServerInterfaceWrapper) ListUserOrders(ctx echo.Context) error {
	userId, err := bindPathUUID(ctx, "userId")
	if err != nil {
		return err
	}
	return w.Handler.ListUserOrders(ctx, userId)
}

func (w *ServerInterfaceWrapper) RegisterRestaurant(ctx echo.Context) error {
	return w.Handler.RegisterRestaurant(ctx)
}

func (w *ServerInterfaceWrapper) ListRestaurantOrders(ctx echo.Context) error {
	restaurantId, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}
	return w.Handler.ListRestaurantOrders(ctx, restaurantId)
}

func (w *ServerInterfaceWrapper) GetRestaurantMenu(ctx echo.Context) error {
	restaurantId, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}
	return w.Handler.GetRestaurantMenu(ctx, restaurantId)
}

func (w *ServerInterfaceWrapper) AddCategory(ctx echo.Context) error {
	restaurantId, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}
	return w.Handler.AddCategory(ctx, restaurantId)
}

func (w *ServerInterfaceWrapper) UpdateCategoryWindow(ctx echo.Context) error {
	restaurantId, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}
	categoryId, err := bindPathUUID(ctx, "categoryId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateCategoryWindow(ctx, restaurantId, categoryId)
}

func (w *ServerInterfaceWrapper) AddMenuItem(ctx echo.Context) error {
	restaurantId, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}
	return w.Handler.AddMenuItem(ctx, restaurantId)
}

func (w *ServerInterfaceWrapper) UpdateMenuItem(ctx echo.Context) error {
	restaurantId, err := bindPathUUID(ctx, "restaurantId")
	if err != nil {
		return err
	}
	menuItemId, err := bindPathUUID(ctx, "menuItemId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateMenuItem(ctx, restaurantId, menuItemId)
}

func (w *ServerInterfaceWrapper) RegisterPartner(ctx echo.Context) error {
	return w.Handler.RegisterPartner(ctx)
}

func (w *ServerInterfaceWrapper) ListAvailablePartners(ctx echo.Context) error {
	return w.Handler.ListAvailablePartners(ctx)
}

func (w *ServerInterfaceWrapper) ListPartnerOrders(ctx echo.Context) error {
	partnerId, err := bindPathUUID(ctx, "partnerId")
	if err != nil {
		return err
	}
	return w.Handler.ListPartnerOrders(ctx, partnerId)
}

func (w *ServerInterfaceWrapper) GetProfile(ctx echo.Context) error {
	var role string
	err := runtime.BindStyledParameterWithOptions("simple", "role", ctx.Param("role"), &role,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter role: %s", err))
	}
	accountId, err := bindPathUUID(ctx, "accountId")
	if err != nil {
		return err
	}
	return w.Handler.GetProfile(ctx, role, accountId)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params CreateOrderParams
	headers := ctx.Request().Header
	if values, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		if n := len(values); n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}
		var key string
		err := runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", values[0], &key,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}
		params.IdempotencyKey = &key
	}
	return w.Handler.CreateOrder(ctx, params)
}

func (w *ServerInterfaceWrapper) ListActiveOrders(ctx echo.Context) error {
	return w.Handler.ListActiveOrders(ctx)
}

func (w *ServerInterfaceWrapper) DispatchPendingOrder(ctx echo.Context) error {
	return w.Handler.DispatchPendingOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) SetOrderStatus(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.SetOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) AssignPartner(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AssignPartner(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GenerateBill(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GenerateBill(ctx, orderId)
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/users", w.RegisterUser)
	router.GET(baseURL+"/api/v1/users/:userId/orders", w.ListUserOrders)
	router.POST(baseURL+"/api/v1/restaurants", w.RegisterRestaurant)
	router.GET(baseURL+"/api/v1/restaurants/:restaurantId/orders", w.ListRestaurantOrders)
	router.GET(baseURL+"/api/v1/restaurants/:restaurantId/menu", w.GetRestaurantMenu)
	router.POST(baseURL+"/api/v1/restaurants/:restaurantId/categories", w.AddCategory)
	router.PUT(baseURL+"/api/v1/restaurants/:restaurantId/categories/:categoryId/window", w.UpdateCategoryWindow)
	router.POST(baseURL+"/api/v1/restaurants/:restaurantId/menu-items", w.AddMenuItem)
	router.PATCH(baseURL+"/api/v1/restaurants/:restaurantId/menu-items/:menuItemId", w.UpdateMenuItem)
	router.POST(baseURL+"/api/v1/partners", w.RegisterPartner)
	router.GET(baseURL+"/api/v1/partners/available", w.ListAvailablePartners)
	router.GET(baseURL+"/api/v1/partners/:partnerId/orders", w.ListPartnerOrders)
	router.GET(baseURL+"/api/v1/profiles/:role/:accountId", w.GetProfile)
	router.POST(baseURL+"/api/v1/orders", w.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/active", w.ListActiveOrders)
	router.POST(baseURL+"/api/v1/orders/dispatch", w.DispatchPendingOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", w.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId/status", w.SetOrderStatus)
	router.POST(baseURL+"/api/v1/orders/:orderId/assignment", w.AssignPartner)
	router.GET(baseURL+"/api/v1/orders/:orderId/bill", w.GenerateBill)
}
