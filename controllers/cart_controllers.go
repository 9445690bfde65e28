package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-billing-app/models"
	"github.com/yeremiapane/hotel-billing-app/services"
	"github.com/yeremiapane/hotel-billing-app/utils"
)

type CartController struct {
	DB    *gorm.DB
	Carts *services.CartStore
}

func NewCartController(db *gorm.DB, carts *services.CartStore) *CartController {
	return &CartController{DB: db, Carts: carts}
}

// currentUserID mengambil user id yang diset AuthMiddleware.
func currentUserID(c *gin.Context) (uint, bool) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := userIDInterface.(uint)
	return userID, ok
}

type cartLineResponse struct {
	MenuItemID uint    `json:"menu_item_id"`
	ItemName   string  `json:"item_name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	LineTotal  float64 `json:"line_total"`
}

// cartResponse merender snapshot cart. Nominal dibulatkan 2 desimal
// untuk tampilan saja; perhitungan internal tetap decimal penuh.
func cartResponse(snap services.CartSnapshot) gin.H {
	lines := make([]cartLineResponse, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, cartLineResponse{
			MenuItemID: l.MenuItemID,
			ItemName:   l.ItemName,
			UnitPrice:  l.UnitPrice.Round(2).InexactFloat64(),
			Quantity:   l.Quantity,
			LineTotal:  l.LineTotal().Round(2).InexactFloat64(),
		})
	}

	return gin.H{
		"lines":    lines,
		"subtotal": snap.Subtotal.Round(2).InexactFloat64(),
		"tax":      snap.Tax.Round(2).InexactFloat64(),
		"total":    snap.Total.Round(2).InexactFloat64(),
	}
}

// GetCart -> isi cart user saat ini beserta subtotal/pajak/total
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart contents", cartResponse(cc.Carts.Snapshot(userID)))
}

// AddToCart -> tambah item ke cart. Item yang sudah ada di cart
// quantity-nya +1, item baru masuk dengan quantity 1.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := cc.DB.First(&item, req.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !item.Available {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu item is not available"))
		return
	}

	cc.Carts.Add(userID, item)

	utils.RespondJSON(c, http.StatusOK, item.Name+" added to cart", cartResponse(cc.Carts.Snapshot(userID)))
}

// UpdateCartItem -> geser quantity dengan delta (+1/-1 dari tombol UI).
// Quantity yang mencapai 0 menghapus baris. No-op kalau item tidak ada di cart.
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	var req struct {
		Delta *int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cc.Carts.ChangeQuantity(userID, uint(itemID), *req.Delta)

	utils.RespondJSON(c, http.StatusOK, "Cart updated", cartResponse(cc.Carts.Snapshot(userID)))
}

// RemoveCartItem -> hapus baris tanpa syarat
func (cc *CartController) RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	cc.Carts.Remove(userID, uint(itemID))

	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", cartResponse(cc.Carts.Snapshot(userID)))
}

// ClearCart -> batalkan penyusunan bill
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	cc.Carts.Clear(userID)

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
