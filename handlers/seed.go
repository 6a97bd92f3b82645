package handlers

import (
	"net/http"

	"clothing-store/models"
	"clothing-store/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type SeedHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewSeedHandler(s *store.Store, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{store: s, logger: logger}
}

var seedUser = models.CreateUserRequest{
	Email:     "test@example.com",
	FirstName: "Иван",
	LastName:  "Иванов",
	Password:  "password123",
}

var seedProducts = []models.CreateProductRequest{
	{
		Name:          "Футболка хлопковая",
		Description:   "Комфортная хлопковая футболка из 100% хлопка. Идеально для повседневной носки.",
		Price:         1500.0,
		Category:      "Футболки",
		Size:          "M",
		Color:         "Белый",
		StockQuantity: 50,
	},
	{
		Name:          "Джинсы классические",
		Description:   "Качественные джинсы из премиального денима. Удобные и стильные.",
		Price:         3500.0,
		Category:      "Джинсы",
		Size:          "32",
		Color:         "Синий",
		StockQuantity: 30,
	},
	{
		Name:          "Куртка зимняя",
		Description:   "Теплая зимняя куртка с утеплителем. Защищает от ветра и мороза.",
		Price:         8000.0,
		Category:      "Куртки",
		Size:          "L",
		Color:         "Черный",
		StockQuantity: 20,
	},
	{
		Name:          "Платье вечернее",
		Description:   "Элегантное вечернее платье для особых occasions.",
		Price:         5000.0,
		Category:      "Платья",
		Size:          "S",
		Color:         "Красный",
		StockQuantity: 15,
	},
	{
		Name:          "Рубашка офисная",
		Description:   "Стильная рубашка для офиса и деловых встреч.",
		Price:         2500.0,
		Category:      "Рубашки",
		Size:          "L",
		Color:         "Голубой",
		StockQuantity: 40,
	},
	{
		Name:          "Свитер шерстяной",
		Description:   "Теплый свитер из натуральной шерсти для холодных дней.",
		Price:         3000.0,
		Category:      "Свитеры",
		Size:          "M",
		Color:         "Серый",
		StockQuantity: 25,
	},
}

// Seed populates one demo user and six demo products. It is idempotent:
// when any user already exists nothing is inserted.
func (h *SeedHandler) Seed(c *gin.Context) {
	ctx, span := otel.Tracer("clothing-store").Start(c.Request.Context(), "Seed")
	defer span.End()

	existing, err := h.store.ListUsers(ctx, 0, 1)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to check for existing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed database"})
		return
	}
	if len(existing) > 0 {
		h.logger.Info("Database already seeded")
		c.JSON(http.StatusOK, gin.H{"message": "Database is already seeded"})
		return
	}

	if _, err := h.store.CreateUser(ctx, seedUser); err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to seed user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed database"})
		return
	}

	for _, p := range seedProducts {
		if _, err := h.store.CreateProduct(ctx, p); err != nil {
			span.RecordError(err)
			h.logger.Error("Failed to seed product", zap.String("name", p.Name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed database"})
			return
		}
	}

	h.logger.Info("Database seeded", zap.Int("products", len(seedProducts)))
	c.JSON(http.StatusOK, gin.H{"message": "Database seeded with demo data"})
}
