package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-billing-app/models"
	"github.com/yeremiapane/hotel-billing-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> list menu, diurutkan kategori lalu nama.
// Filter opsional: ?category=..., ?available=true, ?search=...
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	query := mc.DB.Model(&models.MenuItem{}).Order("category asc").Order("name asc")

	if category := c.Query("category"); category != "" && category != "all" {
		if !models.IsValidCategory(category) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
			return
		}
		query = query.Where("category = ?", category)
	}

	if c.Query("available") == "true" {
		query = query.Where("available = ?", true)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetMenuItemByID
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenuItem (admin only)
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	type request struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Price       *float64 `json:"price" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Available   *bool    `json:"available"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if *req.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
		return
	}

	if !models.IsValidCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Available:   available,
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem (admin only) -> partial update
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		Available   *bool    `json:"available"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		if !models.IsValidCategory(*req.Category) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
			return
		}
		updates["category"] = *req.Category
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}

	if len(updates) > 0 {
		if err := mc.DB.Model(&item).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem (admin only). Bill lama tidak terpengaruh karena
// bill item menyimpan snapshot nama & harga sendiri.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}
