package models

import "time"

// Product represents an ice-cream flavour on sale.
type Product struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" gorm:"index;type:varchar(100)"`
	Price        float64   `json:"price"`
	TotalQty     int       `json:"total_qty"`
	RemainingQty int       `json:"remaining_qty"`
	DailySale    int       `json:"daily_sale"`
	Likes        int       `json:"likes"`
	AddedOn      time.Time `json:"added_on"`
}

// SuggestDiscount reports whether the product has not sold today.
// Nothing ever increments DailySale, so this holds for every product.
func (p Product) SuggestDiscount() bool {
	return p.DailySale == 0
}
