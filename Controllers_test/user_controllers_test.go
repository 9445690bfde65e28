package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-billing-app/controllers"
	"github.com/yeremiapane/hotel-billing-app/models"
	"github.com/yeremiapane/hotel-billing-app/utils"
)

// setupTestDB menggunakan SQLite in-memory untuk testing
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.MenuItem{},
		&models.Bill{},
		&models.BillItem{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(payloadBytes)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLoginAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB()
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]string{
		"name":     "Admin User",
		"email":    "admin@example.com",
		"password": "password123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResponse map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &registerResponse)
	assert.NoError(t, err)
	assert.Equal(t, true, registerResponse["status"])
	data := registerResponse["data"].(map[string]interface{})
	assert.NotNil(t, data["user_id"])

	// Record role harus tersimpan
	var roleCount int64
	db.Model(&models.UserRole{}).Where("role = ?", "admin").Count(&roleCount)
	assert.Equal(t, int64(1), roleCount)

	w = doJSON(t, router, "POST", "/login", map[string]string{
		"email":    "admin@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &loginResponse)
	assert.NoError(t, err)
	assert.Equal(t, true, loginResponse["status"])
	data = loginResponse["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", data["user_role"])
}

// User tanpa record role dianggap staff saat login
func TestLoginWithoutRoleRecordIsStaff(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB()
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]string{
		"name":     "Plain User",
		"email":    "staff@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/login", map[string]string{
		"email":    "staff@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &loginResponse)
	assert.NoError(t, err)
	data := loginResponse["data"].(map[string]interface{})
	assert.Equal(t, "staff", data["user_role"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB()
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
