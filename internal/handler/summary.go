package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/lathees-dev/Budget-App/internal/models"
	"github.com/lathees-dev/Budget-App/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SummaryHandler aggregates a month of spending per category so the
// dashboard gets its totals and progress bars from one call.
type SummaryHandler struct {
	DB *gorm.DB
}

func NewSummaryHandler(db *gorm.DB) *SummaryHandler {
	return &SummaryHandler{DB: db}
}

type categorySummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// Monthly returns per-category spent-vs-budget figures for a month.
// Month parameter: ?month=2024-01, defaulting to the current month.
func (h *SummaryHandler) Monthly(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}
	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
		return
	}
	startOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	var categories []models.Category
	if err := h.DB.
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&categories).Error; err != nil {
		log.Printf("summary: load categories: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	var transactions []models.Transaction
	if err := h.DB.
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, startOfMonth, endOfMonth).
		Find(&transactions).Error; err != nil {
		log.Printf("summary: load transactions: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	spentByCategory := make(map[string]int64)
	for i := range transactions {
		spentByCategory[transactions[i].CategoryID] += transactions[i].AmountCent
	}

	var totalBudgetCent, totalSpentCent int64
	items := make([]categorySummary, 0, len(categories))
	for i := range categories {
		cat := &categories[i]
		spentCent := spentByCategory[cat.ID]
		totalBudgetCent += cat.BudgetCent
		totalSpentCent += spentCent
		items = append(items, categorySummary{
			ID:        cat.ID,
			Name:      cat.Name,
			Color:     cat.Color,
			Budget:    util.CentsToAmount(cat.BudgetCent),
			Spent:     util.CentsToAmount(spentCent),
			Remaining: util.CentsToAmount(cat.BudgetCent - spentCent),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"month":       monthStr,
		"categories":  items,
		"totalBudget": util.CentsToAmount(totalBudgetCent),
		"totalSpent":  util.CentsToAmount(totalSpentCent),
	})
}
