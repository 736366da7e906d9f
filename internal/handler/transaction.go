package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lathees-dev/Budget-App/internal/models"
	"github.com/lathees-dev/Budget-App/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves the owner-scoped transaction CRUD. Create and
// update additionally verify that the referenced category exists and
// belongs to the caller.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

type transactionReq struct {
	CategoryID  string      `json:"categoryId"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
}

type transactionResp struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"categoryId"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Amount:      util.CentsToAmount(t.AmountCent),
		Date:        t.Date.Format(util.DateLayout),
		Description: t.Description,
	}
}

// parseTransactionReq binds and validates the request body: category id
// present, amount positive, date a real calendar date.
func parseTransactionReq(c *gin.Context) (categoryID string, amountCent int64, date time.Time, description string, ok bool) {
	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid transaction data")
		return "", 0, time.Time{}, "", false
	}
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	if req.CategoryID == "" {
		util.Fail(c, http.StatusBadRequest, "Invalid transaction data")
		return "", 0, time.Time{}, "", false
	}
	amountCent, err := util.AmountToCents(req.Amount)
	if err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid transaction data")
		return "", 0, time.Time{}, "", false
	}
	date, err = util.ParseDate(req.Date)
	if err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid transaction data")
		return "", 0, time.Time{}, "", false
	}
	return req.CategoryID, amountCent, date, req.Description, true
}

// ownedCategory loads a category owned by the user, writing the merged
// not-found/forbidden 404 on a miss.
func (h *TransactionHandler) ownedCategory(c *gin.Context, userID, categoryID string) bool {
	var category models.Category
	if err := h.DB.First(&category, "id = ? AND user_id = ?", categoryID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, http.StatusNotFound, "Category not found or access denied")
		} else {
			log.Printf("transaction: load category: %v", err)
			util.Fail(c, http.StatusInternalServerError, "Failed to verify category")
		}
		return false
	}
	return true
}

// List returns all transactions owned by the caller.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var transactions []models.Transaction
	if err := h.DB.
		Where("user_id = ?", user.ID).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		log.Printf("transaction list: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	items := make([]transactionResp, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResp(&transactions[i]))
	}
	c.JSON(http.StatusOK, items)
}

// Create stores a new transaction for the caller against one of their own
// categories. The owner comes from the session, never from the body.
func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	categoryID, amountCent, date, description, ok := parseTransactionReq(c)
	if !ok {
		return
	}
	if !h.ownedCategory(c, user.ID, categoryID) {
		return
	}

	transaction := models.Transaction{
		UserID:      user.ID,
		CategoryID:  categoryID,
		AmountCent:  amountCent,
		Date:        date,
		Description: description,
	}
	if err := h.DB.Create(&transaction).Error; err != nil {
		log.Printf("transaction create: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, toTransactionResp(&transaction))
}

// Update modifies a transaction the caller owns.
func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := c.Param("id")
	categoryID, amountCent, date, description, ok := parseTransactionReq(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := h.DB.First(&transaction, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, http.StatusNotFound, "Transaction not found or access denied")
		} else {
			log.Printf("transaction update: load: %v", err)
			util.Fail(c, http.StatusInternalServerError, "Failed to update transaction")
		}
		return
	}

	if !h.ownedCategory(c, user.ID, categoryID) {
		return
	}

	transaction.CategoryID = categoryID
	transaction.AmountCent = amountCent
	transaction.Date = date
	transaction.Description = description
	if err := h.DB.Save(&transaction).Error; err != nil {
		log.Printf("transaction update: save: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, toTransactionResp(&transaction))
}

// Delete removes a transaction the caller owns.
func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := c.Param("id")

	var transaction models.Transaction
	if err := h.DB.First(&transaction, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, http.StatusNotFound, "Transaction not found or access denied")
		} else {
			log.Printf("transaction delete: load: %v", err)
			util.Fail(c, http.StatusInternalServerError, "Failed to delete transaction")
		}
		return
	}

	if err := h.DB.Delete(&transaction).Error; err != nil {
		log.Printf("transaction delete: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
