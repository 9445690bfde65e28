package models

import "time"

// Bill adalah header transaksi. Immutable setelah dibuat:
// tidak ada path update/delete.
type Bill struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	BillNumber    string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"bill_number"`
	CustomerName  *string `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone *string `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	RoomNumber    *string `gorm:"type:varchar(20)" json:"room_number,omitempty"`
	Subtotal      float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax           float64 `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total         float64 `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod *string `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	CreatedBy     uint    `gorm:"not null;index" json:"created_by"`
	Creator       User    `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`

	BillItems []BillItem `gorm:"foreignKey:BillID" json:"bill_items,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// BillItem adalah snapshot satu baris cart saat bill dibuat.
// Nama & harga didenormalisasi supaya edit menu tidak mengubah bill lama.
type BillItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	BillID     uint    `gorm:"not null;index" json:"bill_id"`
	Bill       Bill    `gorm:"foreignKey:BillID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint    `gorm:"not null" json:"menu_item_id"`
	ItemName   string  `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice float64 `gorm:"type:decimal(12,2);not null" json:"total_price"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
