package model

import "time"

// Inventory accumulates purchased quantities per (user, item). Checkout
// upserts into this table inside the order transaction.
type Inventory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_inventories_user_item" json:"userId"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_inventories_user_item" json:"itemId"`
	Quantity  int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Item Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (Inventory) TableName() string {
	return "inventories"
}
