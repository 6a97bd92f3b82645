package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"clothing-store/models"
	"clothing-store/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type UserHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewUserHandler(s *store.Store, logger *zap.Logger) *UserHandler {
	return &UserHandler{store: s, logger: logger}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "CreateUser")
	defer span.End()

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.String("user.email", req.Email))

	user, err := h.store.CreateUser(ctx, req)
	if err != nil {
		var dup *store.DuplicateEmailError
		if errors.As(err, &dup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": dup.Error()})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "GetUsers")
	defer span.End()

	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 100)

	users, err := h.store.ListUsers(ctx, skip, limit)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(attribute.Int("users.count", len(users)))
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "GetUser")
	defer span.End()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	span.SetAttributes(attribute.Int("user.id", id))

	user, err := h.store.GetUser(ctx, id)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to get user", zap.Int("user_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// intQuery parses an integer query parameter, falling back to def on
// absence or garbage.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
