package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-billing-app/models"
	"github.com/yeremiapane/hotel-billing-app/utils"
)

func setupBillTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.MenuItem{},
		&models.Bill{},
		&models.BillItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSubmitEmptyCart(t *testing.T) {
	utils.InitLogger()
	db := setupBillTestDB(t)
	store := NewCartStore()
	svc := NewBillService(db, store)

	_, err := svc.Submit(1, SubmitRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Tidak ada write sama sekali
	var count int64
	db.Model(&models.Bill{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitCreatesBillWithItems(t *testing.T) {
	utils.InitLogger()
	db := setupBillTestDB(t)
	store := NewCartStore()
	svc := NewBillService(db, store)

	steak := menuItem(1, "Steak", 100.00)
	store.Add(7, steak)
	store.Add(7, steak)
	store.Add(7, menuItem(2, "Juice", 50.00))

	bill, err := svc.Submit(7, SubmitRequest{
		CustomerName:  "Budi",
		RoomNumber:    "101",
		PaymentMethod: "cash",
	})
	assert.NoError(t, err)
	assert.NotNil(t, bill)

	assert.Equal(t, 250.00, bill.Subtotal)
	assert.Equal(t, 12.50, bill.Tax)
	assert.Equal(t, 262.50, bill.Total)
	assert.Equal(t, uint(7), bill.CreatedBy)
	assert.NotEmpty(t, bill.BillNumber)

	if assert.NotNil(t, bill.CustomerName) {
		assert.Equal(t, "Budi", *bill.CustomerName)
	}
	assert.Nil(t, bill.CustomerPhone, "field kosong disimpan sebagai NULL")

	// Snapshot per baris cart
	var items []models.BillItem
	db.Where("bill_id = ?", bill.ID).Find(&items)
	assert.Len(t, items, 2)
	assert.Equal(t, "Steak", items[0].ItemName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 200.00, items[0].TotalPrice)

	// Cart dikosongkan setelah sukses
	assert.Empty(t, store.Snapshot(7).Lines)
}

func TestSubmitRollsBackWhenItemsWriteFails(t *testing.T) {
	utils.InitLogger()
	db := setupBillTestDB(t)
	store := NewCartStore()
	svc := NewBillService(db, store)

	store.Add(1, menuItem(1, "A", 10))

	// Paksa penulisan items gagal: tabel bill_items dihapus
	assert.NoError(t, db.Migrator().DropTable(&models.BillItem{}))

	_, err := svc.Submit(1, SubmitRequest{})
	assert.Error(t, err)

	// Header ikut di-rollback, tidak ada bill yatim
	var count int64
	db.Model(&models.Bill{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Cart tetap utuh supaya user bisa submit ulang
	assert.Len(t, store.Snapshot(1).Lines, 1)
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	utils.InitLogger()
	db := setupBillTestDB(t)
	store := NewCartStore()
	svc := NewBillService(db, store)

	store.Add(1, menuItem(1, "A", 10))

	assert.NoError(t, store.BeginSubmit(1))
	_, err := svc.Submit(1, SubmitRequest{})
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	store.EndSubmit(1)

	_, err = svc.Submit(1, SubmitRequest{})
	assert.NoError(t, err)
}

// Harga dengan presisi nanggung: pembulatan hanya terjadi saat persist,
// bukan selama akumulasi.
func TestSubmitRoundsOnlyAtPersistence(t *testing.T) {
	utils.InitLogger()
	db := setupBillTestDB(t)
	store := NewCartStore()
	svc := NewBillService(db, store)

	item := menuItem(1, "Odd", 0.333)
	store.Add(1, item)
	store.Add(1, item)
	store.Add(1, item) // 3 x 0.333 = 0.999

	bill, err := svc.Submit(1, SubmitRequest{})
	assert.NoError(t, err)

	// Subtotal eksak 0.999 dibulatkan sekali menjadi 1.00;
	// kalau tiap baris dibulatkan lebih dulu hasilnya 0.99.
	assert.Equal(t, 1.00, bill.Subtotal)
	assert.Equal(t, 0.05, bill.Tax)
	assert.Equal(t, 1.05, bill.Total)
}
