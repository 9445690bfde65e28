package Controllers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-billing-app/controllers"
	"github.com/yeremiapane/hotel-billing-app/models"
	"github.com/yeremiapane/hotel-billing-app/services"
	"github.com/yeremiapane/hotel-billing-app/utils"
)

// fakeAuth menirukan AuthMiddleware untuk test: user_id langsung diset.
func fakeAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", models.RoleStaff)
		c.Next()
	}
}

func setupCartRouter(db *gorm.DB, userID uint) (*gin.Engine, *services.CartStore) {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(fakeAuth(userID))

	carts := services.NewCartStore()
	cartCtrl := controllers.NewCartController(db, carts)
	router.GET("/cart", cartCtrl.GetCart)
	router.POST("/cart/items", cartCtrl.AddToCart)
	router.PATCH("/cart/items/:item_id", cartCtrl.UpdateCartItem)
	router.DELETE("/cart/items/:item_id", cartCtrl.RemoveCartItem)
	router.DELETE("/cart", cartCtrl.ClearCart)

	return router, carts
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type cartBody struct {
	Data struct {
		Lines []struct {
			MenuItemID uint    `json:"menu_item_id"`
			ItemName   string  `json:"item_name"`
			UnitPrice  float64 `json:"unit_price"`
			Quantity   int     `json:"quantity"`
			LineTotal  float64 `json:"line_total"`
		} `json:"lines"`
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	} `json:"data"`
}

func parseCart(t *testing.T, body []byte) cartBody {
	var resp cartBody
	assert.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestCartFlow(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB()
	router, _ := setupCartRouter(db, 1)

	steak := models.MenuItem{Name: "Steak", Price: 100.00, Category: "Main Course", Available: true}
	juice := models.MenuItem{Name: "Juice", Price: 50.00, Category: "Beverages", Available: true}
	db.Create(&steak)
	db.Create(&juice)

	// Tambah steak dua kali -> satu baris quantity 2
	w := doJSON(t, router, "POST", "/cart/items", map[string]interface{}{"menu_item_id": steak.ID})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", "/cart/items", map[string]interface{}{"menu_item_id": steak.ID})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", "/cart/items", map[string]interface{}{"menu_item_id": juice.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseCart(t, w.Body.Bytes())
	assert.Len(t, resp.Data.Lines, 2)
	assert.Equal(t, 2, resp.Data.Lines[0].Quantity)
	assert.Equal(t, 250.00, resp.Data.Subtotal)
	assert.Equal(t, 12.50, resp.Data.Tax)
	assert.Equal(t, 262.50, resp.Data.Total)

	// Delta besar negatif menghapus baris (clamp di 0)
	w = doJSON(t, router, "PATCH", "/cart/items/"+itoa(steak.ID), map[string]interface{}{"delta": -5})
	assert.Equal(t, http.StatusOK, w.Code)
	resp = parseCart(t, w.Body.Bytes())
	assert.Len(t, resp.Data.Lines, 1)
	assert.Equal(t, "Juice", resp.Data.Lines[0].ItemName)

	// Remove idempotent: hapus dua kali -> tetap 200, cart kosong
	w = doJSON(t, router, "DELETE", "/cart/items/"+itoa(juice.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "DELETE", "/cart/items/"+itoa(juice.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = parseCart(t, w.Body.Bytes())
	assert.Empty(t, resp.Data.Lines)
	assert.Equal(t, 0.00, resp.Data.Total)
}

func TestAddToCartRejectsUnavailableItem(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB()
	router, _ := setupCartRouter(db, 1)

	soldOut := models.MenuItem{Name: "Soup", Price: 4.00, Category: "Sides", Available: false}
	db.Create(&soldOut)

	w := doJSON(t, router, "POST", "/cart/items", map[string]interface{}{"menu_item_id": soldOut.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Item tak dikenal -> 404
	w = doJSON(t, router, "POST", "/cart/items", map[string]interface{}{"menu_item_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "GET", "/cart", nil)
	resp := parseCart(t, w.Body.Bytes())
	assert.Empty(t, resp.Data.Lines)
}

func TestClearCart(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB()
	router, _ := setupCartRouter(db, 1)

	item := models.MenuItem{Name: "Bread", Price: 3.00, Category: "Breads", Available: true}
	db.Create(&item)

	w := doJSON(t, router, "POST", "/cart/items", map[string]interface{}{"menu_item_id": item.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/cart", nil)
	resp := parseCart(t, w.Body.Bytes())
	assert.Empty(t, resp.Data.Lines)
}
