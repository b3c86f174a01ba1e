// Package http exposes the dispatch use cases over a JSON REST API.
// It coordinates between HTTP handlers and application use cases and maps
// domain errors onto HTTP statuses.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Server wires the HTTP routes to the command and query handlers.
type Server struct {
	createOrderHandler      commands.CreateOrderCommandHandler
	acceptOfferHandler      commands.AcceptOfferCommandHandler
	rejectOfferHandler      commands.RejectOfferCommandHandler
	dispatchOrderHandler    commands.DispatchOrderCommandHandler
	courierOffersHandler    queries.GetCourierOffersQueryHandler
	unassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler

	validate *validator.Validate
	log      zerolog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	rejectOfferHandler commands.RejectOfferCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	courierOffersHandler queries.GetCourierOffersQueryHandler,
	unassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler,
	log zerolog.Logger,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		acceptOfferHandler:      acceptOfferHandler,
		rejectOfferHandler:      rejectOfferHandler,
		dispatchOrderHandler:    dispatchOrderHandler,
		courierOffersHandler:    courierOffersHandler,
		unassignedOrdersHandler: unassignedOrdersHandler,
		validate:                validator.New(),
		log:                     log.With().Str("component", "http_server").Logger(),
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/unassigned", s.GetUnassignedOrders)
	api.POST("/orders/:orderID/dispatch", s.DispatchOrder)
	api.GET("/couriers/:courierID/offers", s.GetCourierOffers)
	api.POST("/offers/:offerID/accept", s.AcceptOffer)
	api.POST("/offers/:offerID/reject", s.RejectOffer)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload for POST /api/v1/orders.
type CreateOrderRequest struct {
	OriginAddress      string `json:"origin_address"      validate:"required"`
	DestinationAddress string `json:"destination_address" validate:"required"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CourierIdentityRequest carries the acting courier's identity for offer
// resolution endpoints.
type CourierIdentityRequest struct {
	CourierID string `json:"courier_id" validate:"required,uuid"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders: geocode, route, price, persist the
// Pending order, and dispatch the first offer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(&request); err != nil {
		return s.badRequest(ctx, "origin_address and destination_address are required")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.OriginAddress, request.DestinationAddress)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// GetCourierOffers handles GET /api/v1/couriers/:courierID/offers: the
// courier's live offers with server-computed countdowns.
func (s *Server) GetCourierOffers(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierID"))
	if err != nil {
		return s.badRequest(ctx, "courierID must be a valid UUID")
	}

	query, err := queries.NewGetCourierOffersQuery(courierID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	response, err := s.courierOffersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCourierOffersResponse(response))
}

// AcceptOffer handles POST /api/v1/offers/:offerID/accept.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	offerID, courierID, err := s.bindOfferResolution(ctx)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAcceptOfferCommand(offerID, courierID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err := s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOffer handles POST /api/v1/offers/:offerID/reject.
func (s *Server) RejectOffer(ctx echo.Context) error {
	offerID, courierID, err := s.bindOfferResolution(ctx)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRejectOfferCommand(offerID, courierID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err := s.rejectOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /api/v1/orders/:orderID/dispatch: operator
// re-trigger for Exhausted orders.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.badRequest(ctx, "orderID must be a valid UUID")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetUnassignedOrders handles GET /api/v1/orders/unassigned: the operator view
// of Pending and Exhausted orders.
func (s *Server) GetUnassignedOrders(ctx echo.Context) error {
	query := queries.NewGetUnassignedOrdersQuery()

	orders, err := s.unassignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]UnassignedOrderResponse, len(orders))
	for i, item := range orders {
		response[i] = UnassignedOrderResponse{
			OrderID:            item.OrderID.String(),
			OriginAddress:      item.OriginAddress,
			DestinationAddress: item.DestinationAddress,
			Price:              item.Price.String(),
			Status:             item.Status,
			CreatedAt:          item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) bindOfferResolution(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	offerID, err := kernel.UUIDFromString(ctx.Param("offerID"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("offerID must be a valid UUID")
	}

	var request CourierIdentityRequest
	if err := ctx.Bind(&request); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid request body")
	}
	if err := s.validate.Struct(&request); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("courier_id must be a valid UUID")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return offerID, courierID, nil
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates domain and gateway errors onto HTTP statuses.
func (s *Server) mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, offer.ErrWrongCourier):
		s.log.Warn().Err(err).
			Str("path", ctx.Path()).
			Msg("offer resolution attempted by a different courier")
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "offer belongs to another courier",
		})
	case errors.Is(err, offer.ErrAlreadyResolved):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "offer no longer available",
		})
	case errors.Is(err, commands.ErrOrderNotDispatchable):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "order cannot be dispatched in its current status",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrAddressNotFound), errors.Is(err, ports.ErrNoRouteFound):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrGeoUnavailable):
		return ctx.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    http.StatusBadGateway,
			Message: "geo service is unavailable",
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		s.log.Error().Err(err).Str("path", ctx.Path()).Msg("request failed")
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}
