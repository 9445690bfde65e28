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

type BillController struct {
	DB    *gorm.DB
	Bills *services.BillService
}

func NewBillController(db *gorm.DB, bills *services.BillService) *BillController {
	return &BillController{DB: db, Bills: bills}
}

// CreateBill -> submit cart jadi bill. Field pelanggan semuanya opsional.
// Cart kosong ditolak 400 tanpa menyentuh database.
func (bc *BillController) CreateBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
		RoomNumber    string `json:"room_number"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := bc.Bills.Submit(userID, services.SubmitRequest{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		RoomNumber:    req.RoomNumber,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrSubmitInProgress):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.ErrorLogger.Printf("Failed to create bill for user %d: %v", userID, err)
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Bill created", bill)
}

// GetAllBills -> riwayat bill, terbaru dulu.
// Filter opsional: ?search= cocok ke nomor bill, nama pelanggan, atau kamar.
func (bc *BillController) GetAllBills(c *gin.Context) {
	query := bc.DB.Model(&models.Bill{}).Order("created_at desc").Order("id desc")

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"bill_number LIKE ? OR customer_name LIKE ? OR room_number LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var bills []models.Bill
	if err := query.Find(&bills).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of bills", bills)
}

// GetBillByID -> detail bill beserta items
func (bc *BillController) GetBillByID(c *gin.Context) {
	idStr := c.Param("bill_id")
	id, _ := strconv.Atoi(idStr)

	var bill models.Bill
	if err := bc.DB.Preload("BillItems").First(&bill, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill detail", bill)
}

// GetBillItems -> items milik satu bill
func (bc *BillController) GetBillItems(c *gin.Context) {
	idStr := c.Param("bill_id")
	id, _ := strconv.Atoi(idStr)

	var bill models.Bill
	if err := bc.DB.First(&bill, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var items []models.BillItem
	if err := bc.DB.Where("bill_id = ?", bill.ID).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill items", items)
}
