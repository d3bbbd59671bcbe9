package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skva/kasse/controllers"
	"github.com/skva/kasse/models"
)

func setupProductRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	productCtrl := controllers.NewProductController(db)
	router.GET("/products", productCtrl.GetAllProducts)
	router.POST("/products", productCtrl.CreateProduct)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.PUT("/products/:id", productCtrl.UpdateProduct)
	router.DELETE("/products/:id", productCtrl.DeleteProduct)
	return router
}

// Prices must survive create -> read as the identical integer; no float
// representation anywhere in the payloads.
func TestProductPriceRoundTrip(t *testing.T) {
	db := openTestDB(t)
	db.Create(&models.Category{Name: "Getränke"})
	db.Create(&models.Category{Name: "Bier & Cider", ParentID: uintP(1)})
	router := setupProductRouter(db)

	payload := map[string]interface{}{
		"name":        "Cola",
		"price":       150,
		"unit":        "0.33",
		"category_id": 2,
		"is_active":   1,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status bool `json:"status"`
		Data   []struct {
			Name  string `json:"name"`
			Price int64  `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Cola", resp.Data[0].Name)
	assert.Equal(t, int64(150), resp.Data[0].Price)
}

func TestProductValidationAndConflict(t *testing.T) {
	db := openTestDB(t)
	db.Create(&models.Category{Name: "Getränke"})
	db.Create(&models.Product{Name: "Cola", Price: 150, Unit: "0.33", CategoryID: 1, IsActive: 1})
	router := setupProductRouter(db)

	// missing price
	body, _ := json.Marshal(map[string]interface{}{
		"name": "Bier", "unit": "0.5", "category_id": 1,
	})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// duplicate name
	body, _ = json.Marshal(map[string]interface{}{
		"name": "Cola", "price": 200, "unit": "0.5", "category_id": 1,
	})
	req = httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestInactiveProductsHiddenFromTill(t *testing.T) {
	db := openTestDB(t)
	db.Create(&models.Category{Name: "Getränke"})
	db.Create(&models.Product{Name: "Cola", Price: 150, Unit: "0.33", CategoryID: 1, IsActive: 1})
	db.Create(&models.Product{Name: "Altes Bier", Price: 400, Unit: "0.5", CategoryID: 1, IsActive: 0})
	router := setupProductRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Cola", resp.Data[0].Name)

	// the back office still sees everything
	req = httptest.NewRequest(http.MethodGet, "/products?all=1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func uintP(v uint) *uint { return &v }
