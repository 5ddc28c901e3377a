package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/partner"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// UseCase is the shape shared by every command and query handler.
type UseCase[Q, R any] interface {
	Handle(ctx context.Context, request Q) (R, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	RegisterUser         UseCase[commands.RegisterUserCommand, *identity.User]
	RegisterRestaurant   UseCase[commands.RegisterRestaurantCommand, *identity.Restaurant]
	RegisterPartner      UseCase[commands.RegisterPartnerCommand, *partner.Partner]
	AddCategory          UseCase[commands.AddCategoryCommand, *catalog.Category]
	UpdateCategoryWindow UseCase[commands.UpdateCategoryWindowCommand, *catalog.Category]
	AddMenuItem          UseCase[commands.AddMenuItemCommand, *catalog.MenuItem]
	UpdateMenuItem       UseCase[commands.UpdateMenuItemCommand, *catalog.MenuItem]
	CreateOrder          UseCase[commands.CreateOrderCommand, *order.Order]
	SetOrderStatus       UseCase[commands.SetOrderStatusCommand, *order.Order]
	AssignPartner        UseCase[commands.AssignPartnerCommand, *order.Order]
	DispatchPendingOrder UseCase[commands.DispatchPendingOrderCommand, *order.Order]

	GetOrder              UseCase[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	ListOrders            UseCase[queries.ListOrdersQuery, []queries.OrderSummary]
	GenerateBill          UseCase[queries.GenerateBillQuery, queries.Bill]
	ListAvailablePartners UseCase[queries.ListAvailablePartnersQuery, []queries.AvailablePartner]
	GetRestaurantMenu     UseCase[queries.GetRestaurantMenuQuery, queries.GetRestaurantMenuQueryResponse]
	GetProfile            UseCase[queries.GetProfileQuery, queries.Profile]
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: handlers, logger: logger}
}

var _ ServerInterface = (*Server)(nil)

func (s *Server) RegisterUser(ctx echo.Context) error {
	var body NewAccount
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	cmd, err := commands.NewRegisterUserCommand(body.Name, body.Email, body.Mobile, body.Address)
	if err != nil {
		return s.fail(ctx, err)
	}
	user, err := s.h.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, profileFromContact(identity.RoleCustomer, user.ID(), user.Contact(), user.CreatedAt()))
}

func (s *Server) RegisterRestaurant(ctx echo.Context) error {
	var body NewAccount
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	cmd, err := commands.NewRegisterRestaurantCommand(body.Name, body.Email, body.Mobile, body.Address)
	if err != nil {
		return s.fail(ctx, err)
	}
	restaurant, err := s.h.RegisterRestaurant.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, profileFromContact(
		identity.RoleRestaurant, restaurant.ID(), restaurant.Contact(), restaurant.CreatedAt(),
	))
}

func (s *Server) RegisterPartner(ctx echo.Context) error {
	var body NewPartner
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	cmd, err := commands.NewRegisterPartnerCommand(body.Name, body.Email, body.Mobile, body.Address, body.Vehicle)
	if err != nil {
		return s.fail(ctx, err)
	}
	p, err := s.h.RegisterPartner.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, profileFromPartner(p))
}

func (s *Server) GetProfile(ctx echo.Context, role string, accountId openapi_types.UUID) error {
	id, err := fromUUID(accountId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetProfileQuery(role, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	profile, err := s.h.GetProfile.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, profileFromQuery(profile))
}

func (s *Server) GetRestaurantMenu(ctx echo.Context, restaurantId openapi_types.UUID) error {
	id, err := fromUUID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetRestaurantMenuQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	menu, err := s.h.GetRestaurantMenu.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, menuFromQuery(menu))
}

func (s *Server) AddCategory(ctx echo.Context, restaurantId openapi_types.UUID) error {
	var body NewCategory
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	rid, err := fromUUID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddCategoryCommand(rid, body.Name, body.StartTime, body.EndTime)
	if err != nil {
		return s.fail(ctx, err)
	}
	category, err := s.h.AddCategory.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, categoryFromDomain(category))
}

func (s *Server) UpdateCategoryWindow(ctx echo.Context, restaurantId, categoryId openapi_types.UUID) error {
	var body TimeWindow
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	rid, err := fromUUID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cid, err := fromUUID(categoryId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateCategoryWindowCommand(rid, cid, body.StartTime, body.EndTime)
	if err != nil {
		return s.fail(ctx, err)
	}
	category, err := s.h.UpdateCategoryWindow.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, categoryFromDomain(category))
}

func (s *Server) AddMenuItem(ctx echo.Context, restaurantId openapi_types.UUID) error {
	var body NewMenuItem
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	rid, err := fromUUID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cid, err := fromUUID(body.CategoryId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddMenuItemCommand(rid, cid, body.Name, body.Price)
	if err != nil {
		return s.fail(ctx, err)
	}
	item, err := s.h.AddMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, menuItemFromDomain(item))
}

func (s *Server) UpdateMenuItem(ctx echo.Context, restaurantId, menuItemId openapi_types.UUID) error {
	var body MenuItemPatch
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	rid, err := fromUUID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	mid, err := fromUUID(menuItemId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateMenuItemCommand(rid, mid, body.Price, body.IsAvailable)
	if err != nil {
		return s.fail(ctx, err)
	}
	item, err := s.h.UpdateMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, menuItemFromDomain(item))
}

func (s *Server) CreateOrder(ctx echo.Context, params CreateOrderParams) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	userID, err := fromUUID(body.UserId)
	if err != nil {
		return s.fail(ctx, err)
	}
	restaurantID, err := fromUUID(body.RestaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.LineRequest, 0, len(body.Items))
	for _, item := range body.Items {
		menuItemID, idErr := fromUUID(item.MenuItemId)
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		lines = append(lines, commands.LineRequest{MenuItemID: menuItemID, Quantity: item.Quantity})
	}

	var proof *commands.PaymentProof
	if body.PaymentProof != nil {
		proof = &commands.PaymentProof{
			Filename: body.PaymentProof.Filename,
			Content:  bytes.NewReader(body.PaymentProof.Content),
		}
	}

	var key string
	if params.IdempotencyKey != nil {
		key = *params.IdempotencyKey
	}

	cmd, err := commands.NewCreateOrderCommand(userID, restaurantID, lines, proof, key)
	if err != nil {
		return s.fail(ctx, err)
	}
	placed, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, orderFromDomain(placed))
}

func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := fromUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, OrderDetail{
		OrderSummary: summaryFromQuery(res.OrderSummary),
		Lines:        linesFromQuery(res.Lines),
	})
}

func (s *Server) ListUserOrders(ctx echo.Context, userId openapi_types.UUID) error {
	id, err := fromUUID(userId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListUserOrdersQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listOrders(ctx, query)
}

func (s *Server) ListRestaurantOrders(ctx echo.Context, restaurantId openapi_types.UUID) error {
	id, err := fromUUID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListRestaurantOrdersQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listOrders(ctx, query)
}

func (s *Server) ListPartnerOrders(ctx echo.Context, partnerId openapi_types.UUID) error {
	id, err := fromUUID(partnerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListPartnerOrdersQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listOrders(ctx, query)
}

func (s *Server) ListActiveOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.NewListActiveOrdersQuery())
}

func (s *Server) listOrders(ctx echo.Context, query queries.ListOrdersQuery) error {
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = summaryFromQuery(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) SetOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	id, err := fromUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetOrderStatusCommand(id, status)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.h.SetOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

func (s *Server) AssignPartner(ctx echo.Context, orderId openapi_types.UUID) error {
	var body Assignment
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	id, err := fromUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	partnerID, err := fromUUID(body.PartnerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAssignPartnerCommand(id, partnerID)
	if err != nil {
		return s.fail(ctx, err)
	}
	assigned, err := s.h.AssignPartner.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(assigned))
}

func (s *Server) DispatchPendingOrder(ctx echo.Context) error {
	assigned, err := s.h.DispatchPendingOrder.Handle(ctx.Request().Context(), commands.NewDispatchPendingOrderCommand())
	if errors.Is(err, commands.ErrNoOrderAwaitingDispatch) || errors.Is(err, commands.ErrNoAvailablePartner) {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(assigned))
}

func (s *Server) GenerateBill(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := fromUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGenerateBillQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	bill, err := s.h.GenerateBill.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, billFromQuery(bill))
}

func (s *Server) ListAvailablePartners(ctx echo.Context) error {
	partners, err := s.h.ListAvailablePartners.Handle(ctx.Request().Context(), queries.NewListAvailablePartnersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	response := make([]AvailablePartner, len(partners))
	for i, p := range partners {
		response[i] = AvailablePartner{
			Id:        toUUID(p.ID),
			Name:      p.Name,
			Mobile:    p.Mobile,
			Vehicle:   p.Vehicle,
			CreatedAt: p.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

