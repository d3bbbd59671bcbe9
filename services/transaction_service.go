package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/skva/kasse/models"
	"github.com/skva/kasse/utils"
)

// TransactionService is the only component that performs durable state
// transitions for sales.
type TransactionService struct {
	DB *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

type SubmitItem struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

type SubmitRequest struct {
	MemberID      *uint        `json:"member_id"`
	GuestName     *string      `json:"guest_name"`
	TableNumber   *int         `json:"table_number"`
	PaymentMethod string       `json:"payment_method"`
	TotalAmount   int64        `json:"total_amount"`
	Items         []SubmitItem `json:"items"`
}

// Submit persists a built order as one transaction row plus its items, all
// inside a single store transaction: either everything lands or nothing
// does. The total is recomputed from the submitted line snapshots; the
// client-supplied figure is a display hint and is only logged on mismatch.
func (s *TransactionService) Submit(req SubmitRequest, cashierID uint) (*models.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, invalidField("items", "no items given")
	}

	partyCount := 0
	if req.MemberID != nil {
		partyCount++
	}
	if req.TableNumber != nil {
		partyCount++
	}
	if req.GuestName != nil && *req.GuestName != "" {
		partyCount++
	}
	if partyCount == 0 {
		return nil, invalidField("party", "a member, guest or table must be selected")
	}
	if partyCount > 1 {
		return nil, invalidField("party", "only one of member, guest or table may be selected")
	}

	var total int64
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, invalidField("items", "quantity must be positive")
		}
		if item.Price < 0 {
			return nil, invalidField("items", "price must not be negative")
		}
		total += item.Price * int64(item.Quantity)
	}
	if total <= 0 {
		return nil, invalidField("total_amount", "computed total must be positive")
	}

	if req.TotalAmount != 0 && req.TotalAmount != total {
		utils.InfoLogger.Printf("submit: client total %d differs from computed total %d, using computed",
			req.TotalAmount, total)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	txn := models.Transaction{
		Timestamp:     time.Now(),
		MemberID:      req.MemberID,
		GuestName:     req.GuestName,
		TableNumber:   req.TableNumber,
		CashierID:     cashierID,
		PaymentMethod: paymentMethod,
		Status:        models.TxStatusOpen,
		TotalAmount:   total,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			record := models.TransactionItem{
				TransactionID: txn.ID,
				ProductID:     item.ProductID,
				Quantity:      item.Quantity,
				Price:         item.Price,
				Subtotal:      item.Price * int64(item.Quantity),
				Status:        models.ItemStatusNew,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("transaction %d submitted by cashier %d, total %s",
		txn.ID, cashierID, utils.FormatAmount(txn.TotalAmount))
	return &txn, nil
}

// ListOpen returns all open sales, most recent first.
func (s *TransactionService) ListOpen() ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.DB.Where("status = ?", models.TxStatusOpen).
		Order("timestamp DESC").
		Find(&txns).Error
	return txns, err
}

// FullNameExpr returns the SQL expression for a member's display name,
// qualified with the given table alias. mysql reads || as logical OR, so it
// needs CONCAT; sqlite uses the standard operator.
func FullNameExpr(dialect, qualifier string) string {
	if dialect == "mysql" {
		return fmt.Sprintf("CONCAT(%s.first_name, ' ', %s.last_name)", qualifier, qualifier)
	}
	return fmt.Sprintf("%s.first_name || ' ' || %s.last_name", qualifier, qualifier)
}

type ListFilter struct {
	From   string // inclusive, date component only
	To     string // inclusive, date component only
	Status string
	Search string // substring match on member name
	Limit  int
	Offset int
}

// TransactionSummary is one row of the filtered listing, enriched with the
// member and cashier display names.
type TransactionSummary struct {
	models.Transaction
	MemberName  *string `json:"member_name"`
	CashierName *string `json:"cashier_name"`
}

// List returns the filtered, paginated listing plus the unpaginated match
// count for the pager.
func (s *TransactionService) List(f ListFilter) ([]TransactionSummary, int64, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	base := s.DB.Model(&models.Transaction{}).
		Joins("LEFT JOIN members m ON m.id = transactions.member_id").
		Joins("LEFT JOIN users u ON u.id = transactions.cashier_id")

	if f.From != "" {
		base = base.Where("DATE(transactions.timestamp) >= DATE(?)", f.From)
	}
	if f.To != "" {
		base = base.Where("DATE(transactions.timestamp) <= DATE(?)", f.To)
	}
	if f.Status != "" {
		base = base.Where("transactions.status = ?", f.Status)
	}
	memberName := FullNameExpr(s.DB.Dialector.Name(), "m")
	if f.Search != "" {
		base = base.Where("LOWER("+memberName+") LIKE ?",
			"%"+strings.ToLower(f.Search)+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TransactionSummary
	err := base.Session(&gorm.Session{}).
		Select("transactions.*, " + memberName + " AS member_name, u.username AS cashier_name").
		Order("transactions.timestamp DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ItemDetail is a line item joined with catalog display fields.
type ItemDetail struct {
	models.TransactionItem
	ProductName string `json:"product_name"`
	CategoryID  uint   `json:"category_id"`
}

// TransactionDetail is a single sale with its enriched items.
type TransactionDetail struct {
	models.Transaction
	Items []ItemDetail `json:"items"`
}

// Get fetches one sale with its items. Returns gorm.ErrRecordNotFound when
// the id does not resolve.
func (s *TransactionService) Get(id uint) (*TransactionDetail, error) {
	var txn models.Transaction
	if err := s.DB.First(&txn, id).Error; err != nil {
		return nil, err
	}

	items, err := s.ItemsByTransaction(id)
	if err != nil {
		return nil, err
	}

	return &TransactionDetail{Transaction: txn, Items: items}, nil
}

// ItemsByTransaction returns the line items of one sale joined with the
// product name and category.
func (s *TransactionService) ItemsByTransaction(id uint) ([]ItemDetail, error) {
	var items []ItemDetail
	err := s.DB.Model(&models.TransactionItem{}).
		Select("transaction_items.*, p.name AS product_name, p.category_id AS category_id").
		Joins("JOIN products p ON p.id = transaction_items.product_id").
		Where("transaction_items.transaction_id = ?", id).
		Scan(&items).Error
	return items, err
}

// UpdateStatus moves a sale through the transition table. Unknown statuses
// are rejected before any read; illegal moves return a TransitionError.
func (s *TransactionService) UpdateStatus(id uint, status models.TransactionStatus) (*models.Transaction, error) {
	if !status.Valid() {
		return nil, invalidField("status", "invalid status")
	}

	var txn models.Transaction
	if err := s.DB.First(&txn, id).Error; err != nil {
		return nil, err
	}

	if !txn.Status.CanTransitionTo(status) {
		return nil, &models.TransitionError{From: string(txn.Status), To: string(status)}
	}

	txn.Status = status
	txn.UpdatedAt = time.Now()
	if err := s.DB.Save(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// SetItemStatus moves one line item through the item transition table. The
// parent transaction's status and total are left untouched: a canceled item
// does not shrink the stored total.
func (s *TransactionService) SetItemStatus(itemID uint, status models.ItemStatus) (*models.TransactionItem, error) {
	if !status.Valid() {
		return nil, invalidField("status", "invalid status")
	}

	var item models.TransactionItem
	if err := s.DB.First(&item, itemID).Error; err != nil {
		return nil, err
	}

	if !item.Status.CanTransitionTo(status) {
		return nil, &models.TransitionError{From: string(item.Status), To: string(status)}
	}

	item.Status = status
	item.UpdatedAt = time.Now()
	if err := s.DB.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CancelItem is shorthand for marking one line item canceled.
func (s *TransactionService) CancelItem(itemID uint) (*models.TransactionItem, error) {
	return s.SetItemStatus(itemID, models.ItemStatusCanceled)
}

// Delete removes a sale with its items, all-or-nothing.
func (s *TransactionService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.First(&txn, id).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id = ?", id).Delete(&models.TransactionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&txn).Error
	})
}
