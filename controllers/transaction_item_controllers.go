package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skva/kasse/services"
	"github.com/skva/kasse/utils"
)

type TransactionItemController struct {
	Service *services.TransactionService
}

func NewTransactionItemController(db *gorm.DB) *TransactionItemController {
	return &TransactionItemController{Service: services.NewTransactionService(db)}
}

// GetItemsByTransaction -> GET /transaction-items/by-transaction/:id, line
// items of one sale joined with the product name.
func (tic *TransactionItemController) GetItemsByTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid transaction id"))
		return
	}

	items, err := tic.Service.ItemsByTransaction(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Transaction items", items)
}
