package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clothing-store/models"
	"clothing-store/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var productRows = []string{"id", "name", "description", "price", "category", "size", "color", "stock_quantity", "created_at"}

func setupProductTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gin.Engine) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	logger := zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
	handler := NewProductHandler(store.New(db, logger), logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/products", handler.CreateProduct)
	router.GET("/products", handler.GetProducts)
	router.GET("/products/:id", handler.GetProduct)

	return db, mock, router
}

func TestProductHandler_CreateProduct_Success(t *testing.T) {
	db, mock, router := setupProductTest(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Футболка хлопковая", "Мягкая хлопковая футболка", 1500.0, "Футболки", "M", "Белый", 50).
		WillReturnRows(sqlmock.NewRows(productRows).
			AddRow(1, "Футболка хлопковая", "Мягкая хлопковая футболка", 1500.0, "Футболки", "M", "Белый", 50, time.Now()))

	reqBody := models.CreateProductRequest{
		Name:          "Футболка хлопковая",
		Description:   "Мягкая хлопковая футболка",
		Price:         1500,
		Category:      "Футболки",
		Size:          "M",
		Color:         "Белый",
		StockQuantity: 50,
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var product models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if product.ID != 1 {
		t.Errorf("Expected product ID 1, got %d", product.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestProductHandler_CreateProduct_InvalidPrice(t *testing.T) {
	db, _, router := setupProductTest(t)
	defer db.Close()

	// No database expectations: validation fails before any query.
	body := []byte(`{"name":"Футболка","price":-10,"stock_quantity":5}`)
	req := httptest.NewRequest("POST", "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestProductHandler_GetProducts_CategoryAndSort(t *testing.T) {
	db, mock, router := setupProductTest(t)
	defer db.Close()

	mock.ExpectQuery("FROM products WHERE category = \\$1 ORDER BY price DESC, id OFFSET \\$2 LIMIT \\$3").
		WithArgs("Джинсы", 0, 100).
		WillReturnRows(sqlmock.NewRows(productRows).
			AddRow(2, "Джинсы классические", "", 3500.0, "Джинсы", "L", "Синий", 30, time.Now()))

	req := httptest.NewRequest("GET", "/products?category=Джинсы&sort=price_desc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var products []models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(products) != 1 || products[0].Category != "Джинсы" {
		t.Errorf("Unexpected product list: %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestProductHandler_GetProducts_EmptyResult(t *testing.T) {
	db, mock, router := setupProductTest(t)
	defer db.Close()

	mock.ExpectQuery("FROM products ORDER BY id OFFSET \\$1 LIMIT \\$2").
		WithArgs(0, 100).
		WillReturnRows(sqlmock.NewRows(productRows))

	req := httptest.NewRequest("GET", "/products", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("Expected empty JSON array, got %s", body)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestProductHandler_GetProduct_NotFound(t *testing.T) {
	db, mock, router := setupProductTest(t)
	defer db.Close()

	mock.ExpectQuery("FROM products WHERE id = \\$1").
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("GET", "/products/999", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestProductHandler_GetProduct_InvalidID(t *testing.T) {
	db, _, router := setupProductTest(t)
	defer db.Close()

	req := httptest.NewRequest("GET", "/products/abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
