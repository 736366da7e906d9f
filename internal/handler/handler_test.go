package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lathees-dev/Budget-App/internal/database"
	"github.com/lathees-dev/Budget-App/internal/middleware"
	"github.com/lathees-dev/Budget-App/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// newTestRouter wires the API exactly like the production router, minus
// pages and static assets.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	r := gin.New()
	api := r.Group("/api")

	authHandler := NewAuthHandler(db, testSecret)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	protected := api.Group("", middleware.AuthMiddleware(testSecret, db))
	protected.GET("/auth/user", authHandler.CurrentUser)

	categoryHandler := NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.List)
	protected.POST("/categories", categoryHandler.Create)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	transactionHandler := NewTransactionHandler(db)
	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	summaryHandler := NewSummaryHandler(db)
	protected.GET("/summary", summaryHandler.Monthly)

	return r, db
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == util.AuthCookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// signupUser registers an account and returns its session cookie.
func signupUser(t *testing.T, r *gin.Engine, name, email, password string) *http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())
	return sessionCookie(t, w)
}

// createCategory makes a category for the session and returns its id.
func createCategory(t *testing.T, r *gin.Engine, cookie *http.Cookie, name string, budget float64, color string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/categories", gin.H{
		"name":   name,
		"budget": budget,
		"color":  color,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, "create category failed: %s", w.Body.String())
	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

// createTransaction records a transaction for the session and returns its id.
func createTransaction(t *testing.T, r *gin.Engine, cookie *http.Cookie, categoryID string, amount float64, date, description string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"categoryId":  categoryID,
		"amount":      amount,
		"date":        date,
		"description": description,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, "create transaction failed: %s", w.Body.String())
	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}
