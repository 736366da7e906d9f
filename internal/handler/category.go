package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/lathees-dev/Budget-App/internal/models"
	"github.com/lathees-dev/Budget-App/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves the owner-scoped category CRUD. Every query is
// filtered by the authenticated user's id; a miss on someone else's
// category is indistinguishable from a miss on a nonexistent one.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryReq struct {
	Name   string      `json:"name"`
	Budget json.Number `json:"budget"`
	Color  string      `json:"color"`
}

type categoryResp struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
	Color  string  `json:"color"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{
		ID:     cat.ID,
		Name:   cat.Name,
		Budget: util.CentsToAmount(cat.BudgetCent),
		Color:  cat.Color,
	}
}

// parseCategoryReq binds and validates the request body. A non-empty name
// and a positive budget are required; the UI checks these too but the API
// does not trust it.
func parseCategoryReq(c *gin.Context) (name string, budgetCent int64, color string, ok bool) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid category data")
		return "", 0, "", false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Fail(c, http.StatusBadRequest, "Invalid category data")
		return "", 0, "", false
	}
	budgetCent, err := util.AmountToCents(req.Budget)
	if err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid category data")
		return "", 0, "", false
	}
	return req.Name, budgetCent, req.Color, true
}

// List returns all categories owned by the caller.
func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var categories []models.Category
	if err := h.DB.
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&categories).Error; err != nil {
		log.Printf("category list: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	items := make([]categoryResp, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryResp(&categories[i]))
	}
	c.JSON(http.StatusOK, items)
}

// Create stores a new category for the caller. The owner comes from the
// session, never from the body.
func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	name, budgetCent, color, ok := parseCategoryReq(c)
	if !ok {
		return
	}

	category := models.Category{
		UserID:     user.ID,
		Name:       name,
		BudgetCent: budgetCent,
		Color:      color,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		log.Printf("category create: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, toCategoryResp(&category))
}

// Update modifies a category the caller owns.
func (h *CategoryHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := c.Param("id")
	name, budgetCent, color, ok := parseCategoryReq(c)
	if !ok {
		return
	}

	var category models.Category
	if err := h.DB.First(&category, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, http.StatusNotFound, "Category not found or access denied")
		} else {
			log.Printf("category update: load: %v", err)
			util.Fail(c, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	category.Name = name
	category.BudgetCent = budgetCent
	category.Color = color
	if err := h.DB.Save(&category).Error; err != nil {
		log.Printf("category update: save: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, toCategoryResp(&category))
}

// Delete removes a category the caller owns along with every transaction
// referencing it. The cascade runs in one store transaction, children
// first, so no transaction ever outlives its category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := c.Param("id")

	var category models.Category
	if err := h.DB.First(&category, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, http.StatusNotFound, "Category not found or access denied")
		} else {
			log.Printf("category delete: load: %v", err)
			util.Fail(c, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND category_id = ?", user.ID, category.ID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		log.Printf("category delete: cascade: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
