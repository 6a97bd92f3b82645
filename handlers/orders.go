package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"clothing-store/kafka"
	"clothing-store/middleware"
	"clothing-store/models"
	"clothing-store/store"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type OrderHandler struct {
	store    *store.Store
	producer sarama.SyncProducer
	logger   *zap.Logger
}

// NewOrderHandler wires the order endpoints. The producer may be nil, in
// which case order events are not published.
func NewOrderHandler(s *store.Store, producer sarama.SyncProducer, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{store: s, producer: producer, logger: logger}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "CreateOrder")
	defer span.End()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The user id is supplied out-of-band and defaults to the demo user.
	// No existence check is performed.
	userID := intQuery(c, "user_id", 1)
	span.SetAttributes(
		attribute.Int("user_id", userID),
		attribute.Int("order.line_count", len(req.Products)),
	)

	order, err := h.store.CreateOrder(ctx, userID, req.Products)
	if err != nil {
		var notFound *store.ProductNotFoundError
		var noStock *store.InsufficientStockError
		if errors.As(err, &notFound) || errors.As(err, &noStock) {
			middleware.RecordOrderCreated("rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		middleware.RecordOrderCreated("failed")
		span.RecordError(err)
		h.logger.Error("Failed to create order", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	middleware.RecordOrderCreated("created")
	span.SetAttributes(attribute.Int("order.id", order.ID))

	if h.producer != nil {
		event := models.OrderEvent{
			OrderID:     order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			Products:    order.Products,
			EventType:   "order_created",
		}
		if err := kafka.PublishOrderEvent(ctx, h.producer, "order_events", event, h.logger); err != nil {
			// The order is already committed; publishing is best effort.
			h.logger.Error("Failed to publish order_created event", zap.Int("order_id", order.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "GetOrders")
	defer span.End()

	userID := intQuery(c, "user_id", 1)
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 100)
	span.SetAttributes(attribute.Int("user_id", userID))

	orders, err := h.store.ListOrders(ctx, userID, skip, limit)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to list orders", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "GetOrder")
	defer span.End()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	span.SetAttributes(attribute.Int("order.id", id))

	order, err := h.store.GetOrder(ctx, id)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to get order", zap.Int("order_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}
