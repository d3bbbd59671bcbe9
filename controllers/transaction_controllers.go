package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skva/kasse/live"
	"github.com/skva/kasse/models"
	"github.com/skva/kasse/services"
	"github.com/skva/kasse/utils"
)

type TransactionController struct {
	Service *services.TransactionService
	Hub     *live.Hub
}

func NewTransactionController(db *gorm.DB, hub *live.Hub) *TransactionController {
	return &TransactionController{
		Service: services.NewTransactionService(db),
		Hub:     hub,
	}
}

// GetAllTransactions -> filtered, paginated listing with member and cashier
// names joined in.
func (tc *TransactionController) GetAllTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, total, err := tc.Service.List(services.ListFilter{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of transactions", gin.H{
		"data":  rows,
		"total": total,
	})
}

func (tc *TransactionController) GetOpenTransactions(c *gin.Context) {
	txns, err := tc.Service.ListOpen()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Open transactions", txns)
}

func (tc *TransactionController) GetTransactionByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid transaction id"))
		return
	}

	detail, err := tc.Service.Get(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Transaction detail", detail)
}

// CreateTransaction submits a built order. The cashier is always the
// authenticated caller, never taken from the request body.
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cashierID := c.GetUint("user_id")
	if cashierID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no authenticated cashier"))
		return
	}

	txn, err := tc.Service.Submit(req, cashierID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.BroadcastTransactionCreated(*txn)
	utils.RespondJSON(c, http.StatusCreated, "Transaction created", gin.H{
		"transaction_id": txn.ID,
	})
}

func (tc *TransactionController) UpdateTransactionStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid transaction id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status is required"))
		return
	}

	txn, err := tc.Service.UpdateStatus(uint(id), models.TransactionStatus(body.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.BroadcastStatusChanged(*txn)
	utils.RespondJSON(c, http.StatusOK, "Status updated", txn)
}

// UpdateItemStatus -> PUT /transactions/items/:id with a status out of the
// closed item vocabulary.
func (tc *TransactionController) UpdateItemStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status is required"))
		return
	}

	item, err := tc.Service.SetItemStatus(uint(id), models.ItemStatus(body.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.BroadcastItemStatusChanged(*item)
	utils.RespondJSON(c, http.StatusOK, "Item status updated", item)
}

// CancelItem -> convenience for the till's line-void button.
func (tc *TransactionController) CancelItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	item, err := tc.Service.CancelItem(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.BroadcastItemStatusChanged(*item)
	utils.RespondJSON(c, http.StatusOK, "Item canceled", item)
}

func (tc *TransactionController) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid transaction id"))
		return
	}

	if err := tc.Service.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.BroadcastTransactionDeleted(uint(id))
	utils.RespondJSON(c, http.StatusOK, "Transaction deleted", gin.H{"transaction_id": id})
}
