package handlers

import (
	"net/http"
	"strconv"

	"clothing-store/models"
	"clothing-store/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ProductHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewProductHandler(s *store.Store, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{store: s, logger: logger}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "CreateProduct")
	defer span.End()

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.store.CreateProduct(ctx, req)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(attribute.Int("product.id", product.ID))
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "GetProducts")
	defer span.End()

	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 100)
	category := c.Query("category")
	sort := c.Query("sort")

	products, err := h.store.ListProducts(ctx, skip, limit, category, sort)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(attribute.Int("products.count", len(products)))
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "GetProduct")
	defer span.End()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	span.SetAttributes(attribute.Int("product.id", id))

	product, err := h.store.GetProduct(ctx, id)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to get product", zap.Int("product_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}
