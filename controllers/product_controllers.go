package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skva/kasse/models"
	"github.com/skva/kasse/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts lists active products for the till. ?all=1 includes
// deactivated ones for the back office.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	q := pc.DB.Model(&models.Product{})
	if c.Query("all") != "1" {
		q = q.Where("is_active = 1")
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
	Stock       *int   `json:"stock"`
	Unit        string `json:"unit"`
	CategoryID  uint   `json:"category_id"`
	IsActive    *int   `json:"is_active"`
}

func (r *productRequest) validate() error {
	switch {
	case r.Name == "":
		return errors.New("name is required")
	case r.Price == nil:
		return errors.New("price is required")
	case *r.Price < 0:
		return errors.New("price must not be negative")
	case r.Unit == "":
		return errors.New("unit is required")
	case r.CategoryID == 0:
		return errors.New("category_id is required")
	}
	return nil
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Product
	if err := pc.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("a product with this name already exists"))
		return
	}

	isActive := 1
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       req.Stock,
		Unit:        req.Unit,
		CategoryID:  req.CategoryID,
		IsActive:    isActive,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Product
	if err := pc.DB.Where("name = ? AND id <> ?", req.Name, product.ID).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("a product with this name already exists"))
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = *req.Price
	product.Stock = req.Stock
	product.Unit = req.Unit
	product.CategoryID = req.CategoryID
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct removes the row for good. Deactivation (is_active=0) is the
// way to hide a product that has sales history.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	result := pc.DB.Delete(&models.Product{}, id)
	if result.Error != nil {
		respondServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
