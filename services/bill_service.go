package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-billing-app/models"
	"github.com/yeremiapane/hotel-billing-app/utils"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrSubmitInProgress = errors.New("a bill submission is already in progress")
)

// GenerateBillNumber menghasilkan nomor bill format lama: BILL-<epoch ms>.
// Hanya unik sampai milidetik; dua submit di milidetik yang sama bertabrakan.
// Dipertahankan untuk kompatibilitas tampilan, tapi submit memakai NewBillNumber.
func GenerateBillNumber() string {
	return fmt.Sprintf("BILL-%d", time.Now().UnixMilli())
}

// NewBillNumber menghasilkan nomor bill tahan tabrakan:
// BILL-<epoch ms>-<8 hex acak dari uuid>.
func NewBillNumber() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("BILL-%d-%s", time.Now().UnixMilli(), suffix)
}

type BillService struct {
	DB    *gorm.DB
	Carts *CartStore
}

func NewBillService(db *gorm.DB, carts *CartStore) *BillService {
	return &BillService{DB: db, Carts: carts}
}

// SubmitRequest membawa field pelanggan opsional dari form bill.
type SubmitRequest struct {
	CustomerName  string
	CustomerPhone string
	RoomNumber    string
	PaymentMethod string
}

// Submit membuat bill dari cart user: header + satu BillItem per baris
// cart, ditulis dalam SATU transaksi supaya tidak ada header yatim
// kalau penulisan items gagal. Pembulatan 2 desimal dilakukan di sini,
// tepat sebelum persist. Cart baru dikosongkan setelah commit sukses.
func (s *BillService) Submit(userID uint, req SubmitRequest) (*models.Bill, error) {
	if err := s.Carts.BeginSubmit(userID); err != nil {
		return nil, err
	}
	defer s.Carts.EndSubmit(userID)

	snap := s.Carts.Snapshot(userID)
	if len(snap.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	bill := models.Bill{
		BillNumber:    NewBillNumber(),
		CustomerName:  optional(req.CustomerName),
		CustomerPhone: optional(req.CustomerPhone),
		RoomNumber:    optional(req.RoomNumber),
		PaymentMethod: optional(req.PaymentMethod),
		Subtotal:      snap.Subtotal.Round(2).InexactFloat64(),
		Tax:           snap.Tax.Round(2).InexactFloat64(),
		Total:         snap.Total.Round(2).InexactFloat64(),
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}

		items := make([]models.BillItem, 0, len(snap.Lines))
		for _, line := range snap.Lines {
			items = append(items, models.BillItem{
				BillID:     bill.ID,
				MenuItemID: line.MenuItemID,
				ItemName:   line.ItemName,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice.Round(2).InexactFloat64(),
				TotalPrice: line.LineTotal().Round(2).InexactFloat64(),
				CreatedAt:  bill.CreatedAt,
			})
		}

		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		bill.BillItems = items
		return nil
	})
	if err != nil {
		// Cart dibiarkan utuh, user bisa submit ulang
		return nil, err
	}

	s.Carts.Clear(userID)
	utils.InfoLogger.Printf("Bill %s created by user %d (total %s)",
		bill.BillNumber, userID, utils.FormatCurrency(bill.Total))

	return &bill, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
