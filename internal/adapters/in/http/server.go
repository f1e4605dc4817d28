// Package http exposes the production tracking API over REST.
package http

import (
	"errors"
	"net/http"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/production"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	admitOrderHandler        commands.AdmitOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getProductionQueueHandler queries.GetProductionQueueQueryHandler
	getOrderStatusHandler     queries.GetOrderStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	admitOrderHandler commands.AdmitOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getProductionQueueHandler queries.GetProductionQueueQueryHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
) *Server {
	return &Server{
		admitOrderHandler:         admitOrderHandler,
		changeOrderStatusHandler:  changeOrderStatusHandler,
		getProductionQueueHandler: getProductionQueueHandler,
		getOrderStatusHandler:     getOrderStatusHandler,
	}
}

// RegisterRoutes attaches the production tracking API to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1/production")

	api.GET("/queue", s.GetProductionQueue)
	api.POST("/:orderId/start", s.StartProduction)
	api.PUT("/:orderId/status", s.ChangeOrderStatus)
	api.GET("/order/:orderId/status", s.GetOrderStatus)
}

// ErrorResponse is the JSON body returned on request failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// QueueItemResponse is one row of the production queue view.
type QueueItemResponse struct {
	OrderID       int64     `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	Status        string    `json:"status"`
	QueuePosition *int      `json:"queue_position,omitempty"`
	StartedAt     time.Time `json:"started_at"`
}

// OrderStatusResponse describes where one order stands in production.
type OrderStatusResponse struct {
	OrderID           int64     `json:"order_id"`
	Status            string    `json:"status"`
	StatusDescription string    `json:"status_description"`
	QueuePosition     *int      `json:"queue_position,omitempty"`
	LastUpdate        time.Time `json:"last_update"`
}

// StartProductionRequest is the optional admission body.
type StartProductionRequest struct {
	CustomerName string `json:"customer_name"`
}

// ChangeOrderStatusRequest carries the requested target status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// GetProductionQueue handles GET /api/v1/production/queue - retrieves every
// order the kitchen currently holds.
func (s *Server) GetProductionQueue(ctx echo.Context) error {
	query := queries.NewGetProductionQueueQuery()

	queue, err := s.getProductionQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve production queue",
		})
	}

	response := make([]QueueItemResponse, len(queue))
	for i, item := range queue {
		response[i] = QueueItemResponse{
			OrderID:       item.OrderID,
			CustomerName:  item.CustomerName,
			Status:        item.Status.String(),
			QueuePosition: item.QueuePosition,
			StartedAt:     item.StartedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartProduction handles POST /api/v1/production/:orderId/start - admits an
// order into production tracking. Admission is idempotent, so repeated calls
// for the same order succeed without effect.
func (s *Server) StartProduction(ctx echo.Context) error {
	orderID, err := kernel.OrderIDFromString(ctx.Param("orderId"))
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	var body StartProductionRequest
	// Body is optional; admission works without a customer name
	_ = ctx.Bind(&body)

	cmd, err := commands.NewAdmitOrderCommand(orderID, body.CustomerName)
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	if err = s.admitOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ChangeOrderStatus handles PUT /api/v1/production/:orderId/status - moves an
// order to a new production status. The status symbol is matched
// case-insensitively.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.OrderIDFromString(ctx.Param("orderId"))
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	var body ChangeOrderStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := production.StatusFromString(body.Status)
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderStatus handles GET /api/v1/production/order/:orderId/status -
// retrieves the production status of one order.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.OrderIDFromString(ctx.Param("orderId"))
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		OrderID:           status.OrderID,
		Status:            status.Status.String(),
		StatusDescription: status.StatusDescription,
		QueuePosition:     status.QueuePosition,
		LastUpdate:        status.LastUpdate,
	})
}

// errorJSON maps domain and application errors onto HTTP status codes:
// unknown order 404, illegal transition 409, malformed values 422,
// everything else 500.
func (s *Server) errorJSON(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, production.ErrInvalidTransition):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
