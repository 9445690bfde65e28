package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-billing-app/models"
	"github.com/yeremiapane/hotel-billing-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats mengambil statistik untuk dashboard admin
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalMenuItems int64   `json:"total_menu_items"`
		AvailableItems int64   `json:"available_items"`
		TotalBills     int64   `json:"total_bills"`
		TodayBills     int64   `json:"today_bills"`
		TotalRevenue   float64 `json:"total_revenue"`
		TodayRevenue   float64 `json:"today_revenue"`
	}

	ac.DB.Model(&models.MenuItem{}).Count(&stats.TotalMenuItems)
	ac.DB.Model(&models.MenuItem{}).Where("available = ?", true).Count(&stats.AvailableItems)

	ac.DB.Model(&models.Bill{}).Count(&stats.TotalBills)
	ac.DB.Model(&models.Bill{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayBills)

	// Revenue dari kolom total bill (sudah termasuk pajak)
	ac.DB.Model(&models.Bill{}).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Bill{}).Where("DATE(created_at) = ?", today).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodayRevenue)

	utils.InfoLogger.Printf("Dashboard stats: %d bills, revenue %s",
		stats.TotalBills, utils.FormatCurrency(stats.TotalRevenue))

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
