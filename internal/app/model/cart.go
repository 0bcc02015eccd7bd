package model

import "time"

// CartItem rows are unique per (user, item); re-adding an item merges into
// the existing row. Rows are hard-deleted on removal and checkout.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_item" json:"userId"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_item" json:"itemId"`
	Quantity  int       `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Item Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
