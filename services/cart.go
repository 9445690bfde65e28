package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/hotel-billing-app/models"
)

// Tarif pajak flat 5%
var TaxRate = decimal.New(5, -2)

// CartLine adalah satu baris bill yang sedang disusun:
// pasangan menu item dengan quantity. Maksimal satu baris per menu item.
type CartLine struct {
	MenuItemID uint            `json:"menu_item_id"`
	ItemName   string          `json:"item_name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart menyimpan baris-baris bill yang sedang disusun, berurutan
// sesuai urutan penambahan. Perhitungan uang memakai decimal supaya
// tidak ada drift float; pembulatan 2 desimal hanya dilakukan saat persist.
type Cart struct {
	lines []CartLine
}

// Add menambah quantity baris yang sudah ada, atau menyisipkan
// baris baru dengan quantity 1.
func (c *Cart) Add(item models.MenuItem) {
	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		MenuItemID: item.ID,
		ItemName:   item.Name,
		UnitPrice:  decimal.NewFromFloat(item.Price),
		Quantity:   1,
	})
}

// ChangeQuantity menambahkan delta ke quantity baris, clamp di 0.
// Baris yang mencapai 0 dihapus dari cart. No-op jika item tidak ada.
func (c *Cart) ChangeQuantity(menuItemID uint, delta int) {
	for i := range c.lines {
		if c.lines[i].MenuItemID != menuItemID {
			continue
		}
		qty := c.lines[i].Quantity + delta
		if qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = qty
		}
		return
	}
}

// Remove menghapus baris tanpa syarat. Idempotent.
func (c *Cart) Remove(menuItemID uint) {
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines mengembalikan salinan baris cart.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal = jumlah (harga satuan x quantity) semua baris.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(TaxRate)
}

func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax())
}

// CartStore menyimpan cart per user. Setiap sesi punya cart sendiri;
// tidak ada state yang dibagi antar user.
type CartStore struct {
	mu         sync.Mutex
	carts      map[uint]*Cart
	submitting map[uint]bool
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts:      make(map[uint]*Cart),
		submitting: make(map[uint]bool),
	}
}

func (s *CartStore) cartFor(userID uint) *Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = &Cart{}
		s.carts[userID] = cart
	}
	return cart
}

func (s *CartStore) Add(userID uint, item models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartFor(userID).Add(item)
}

func (s *CartStore) ChangeQuantity(userID, menuItemID uint, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartFor(userID).ChangeQuantity(menuItemID, delta)
}

func (s *CartStore) Remove(userID, menuItemID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartFor(userID).Remove(menuItemID)
}

func (s *CartStore) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartFor(userID).Clear()
}

// CartSnapshot adalah potret cart pada satu titik waktu,
// dipakai untuk response API dan untuk submit.
type CartSnapshot struct {
	Lines    []CartLine
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

func (s *CartStore) Snapshot(userID uint) CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartFor(userID)
	return CartSnapshot{
		Lines:    cart.Lines(),
		Subtotal: cart.Subtotal(),
		Tax:      cart.Tax(),
		Total:    cart.Total(),
	}
}

// BeginSubmit menandai user sedang submit. Submit kedua selagi yang
// pertama masih jalan ditolak (pengganti busy flag di UI).
func (s *CartStore) BeginSubmit(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting[userID] {
		return ErrSubmitInProgress
	}
	s.submitting[userID] = true
	return nil
}

func (s *CartStore) EndSubmit(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submitting, userID)
}
