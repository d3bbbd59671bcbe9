package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skva/kasse/live"
	"github.com/skva/kasse/middlewares"
	"github.com/skva/kasse/models"
	"github.com/skva/kasse/pos"
	"github.com/skva/kasse/router"
	"github.com/skva/kasse/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndTillFlow walks the main till day:
// 0. init-admin bootstraps the first account and yields a token
// 1. back office creates a category and a product
// 2. the till builds a table order and submits it
// 3. the detail view shows the open sale
// 4. the sale is completed; reopening is refused
func TestEndToEndTillFlow(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db, live.NewHub(), middlewares.NewRateLimiter(1000, 1))

	token := initAdminTest(t, r)

	categoryID := createCategoryTest(t, r, token)
	productID := createProductTest(t, r, token, categoryID)

	txnID := submitTableOrderTest(t, r, token, db, productID)

	checkOpenDetailTest(t, r, token, txnID)
	completeAndLockTest(t, r, token, txnID)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MemberState{},
		&models.Member{},
		&models.Category{},
		&models.Product{},
		&models.Transaction{},
		&models.TransactionItem{},
	))
	for _, name := range models.SeedMemberStates {
		require.NoError(t, db.Create(&models.MemberState{Name: name}).Error)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func initAdminTest(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, http.MethodPost, "/auth/init-admin", "", map[string]string{
		"username": "chef",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)

	// bootstrapping is one-shot
	w = doJSON(t, r, http.MethodPost, "/auth/init-admin", "", map[string]string{
		"username": "chef2",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	return resp.Data.Token
}

func createCategoryTest(t *testing.T, r *gin.Engine, token string) uint {
	w := doJSON(t, r, http.MethodPost, "/categories", token, map[string]interface{}{
		"name": "Getränke",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.Data.ID)
	return resp.Data.ID
}

func createProductTest(t *testing.T, r *gin.Engine, token string, categoryID uint) uint {
	w := doJSON(t, r, http.MethodPost, "/products", token, map[string]interface{}{
		"name":        "Cola",
		"price":       150,
		"unit":        "0.33",
		"category_id": categoryID,
		"is_active":   1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.Data.ID)
	return resp.Data.ID
}

// submitTableOrderTest drives the in-memory order builder the way the till
// UI does, then posts its payload.
func submitTableOrderTest(t *testing.T, r *gin.Engine, token string, db *gorm.DB, productID uint) uint {
	var product models.Product
	require.NoError(t, db.First(&product, productID).Error)

	builder := pos.NewBuilder()
	builder.AddLine(product, 1)
	builder.AddLine(product, 1) // same tap twice merges into one line
	builder.SetTable(3)
	require.Equal(t, int64(300), builder.Total())

	w := doJSON(t, r, http.MethodPost, "/transactions", token, builder.Payload("cash"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			TransactionID uint `json:"transaction_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.Data.TransactionID)
	return resp.Data.TransactionID
}

func checkOpenDetailTest(t *testing.T, r *gin.Engine, token string, txnID uint) {
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/transactions/%d", txnID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Status      string `json:"status"`
			TableNumber *int   `json:"table_number"`
			TotalAmount int64  `json:"total_amount"`
			Items       []struct {
				Quantity int   `json:"quantity"`
				Subtotal int64 `json:"subtotal"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "open", resp.Data.Status)
	require.NotNil(t, resp.Data.TableNumber)
	assert.Equal(t, 3, *resp.Data.TableNumber)
	assert.Equal(t, int64(300), resp.Data.TotalAmount)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 2, resp.Data.Items[0].Quantity)
	assert.Equal(t, int64(300), resp.Data.Items[0].Subtotal)

	// the sale shows up on the open board
	w = doJSON(t, r, http.MethodGet, "/transactions/open", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var open struct {
		Data []struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &open))
	require.Len(t, open.Data, 1)
	assert.Equal(t, txnID, open.Data[0].ID)
}

func completeAndLockTest(t *testing.T, r *gin.Engine, token string, txnID uint) {
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/transactions/%d/status", txnID), token,
		map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/transactions/%d/status", txnID), token,
		map[string]string{"status": "open"})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

// Requests without a token never reach the handlers.
func TestRoutesRequireAuth(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db, live.NewHub(), middlewares.NewRateLimiter(1000, 1))

	w := doJSON(t, r, http.MethodGet, "/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/transactions", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// The global limiter sits in front of every route; a flooding client gets
// cut off with 429 instead of reaching the handlers unchecked.
func TestGlobalRateLimiterCapsRequests(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db, live.NewHub(), middlewares.NewRateLimiter(3, 60))

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodGet, "/ping", "", nil)
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := doJSON(t, r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
