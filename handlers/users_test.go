package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clothing-store/models"
	"clothing-store/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var userRows = []string{"id", "email", "first_name", "last_name", "created_at"}

func setupUserTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gin.Engine) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	logger := zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
	handler := NewUserHandler(store.New(db, logger), logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/users", handler.CreateUser)
	router.GET("/users", handler.GetUsers)
	router.GET("/users/:id", handler.GetUser)

	return db, mock, router
}

func TestUserHandler_CreateUser_Success(t *testing.T) {
	db, mock, router := setupUserTest(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email, first_name, last_name, created_at FROM users WHERE email = \\$1").
		WithArgs("test@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("test@example.com", "Иван", "Иванов", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(1, "test@example.com", "Иван", "Иванов", time.Now()))

	reqBody := models.CreateUserRequest{
		Email:     "test@example.com",
		FirstName: "Иван",
		LastName:  "Иванов",
		Password:  "password123",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("Response must not echo the password: %s", w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestUserHandler_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock, router := setupUserTest(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email, first_name, last_name, created_at FROM users WHERE email = \\$1").
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(1, "test@example.com", "Иван", "Иванов", time.Now()))

	reqBody := models.CreateUserRequest{
		Email:     "test@example.com",
		FirstName: "Иван",
		LastName:  "Иванов",
		Password:  "password123",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestUserHandler_CreateUser_InvalidEmail(t *testing.T) {
	db, _, router := setupUserTest(t)
	defer db.Close()

	// No database expectations: validation fails before any query.
	body := []byte(`{"email":"not-an-email","first_name":"Иван","last_name":"Иванов","password":"password123"}`)
	req := httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUserHandler_CreateUser_ShortPassword(t *testing.T) {
	db, _, router := setupUserTest(t)
	defer db.Close()

	body := []byte(`{"email":"test@example.com","first_name":"Иван","last_name":"Иванов","password":"12345"}`)
	req := httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	db, mock, router := setupUserTest(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email, first_name, last_name, created_at FROM users WHERE id = \\$1").
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("GET", "/users/999", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestUserHandler_GetUsers_Success(t *testing.T) {
	db, mock, router := setupUserTest(t)
	defer db.Close()

	mock.ExpectQuery("FROM users ORDER BY id OFFSET \\$1 LIMIT \\$2").
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(6, "anna@example.com", "Анна", "Петрова", time.Now()))

	req := httptest.NewRequest("GET", "/users?skip=5&limit=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}
