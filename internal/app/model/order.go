package model

import "time"

type OrderStatus string // 주문 상태 코드

const (
	// 결제 게이트웨이 없이 주문 생성과 동시에 결제 완료로 기록된다
	OrderStatusPaid OrderStatus = "PAID"
)

type Order struct {
	ID         uint        `gorm:"primarykey" json:"id"`                           // 주문 ID
	UserID     uint        `gorm:"not null;index" json:"userId"`                   // 주문자 ID
	Status     OrderStatus `gorm:"type:varchar(20);default:'PAID'" json:"status"`  // 주문 상태
	TotalPrice int         `gorm:"not null;check:total_price >= 0" json:"totalPrice"` // 총 결제 금액 (골드)
	CreatedAt  time.Time   `json:"createdAt"`                                      // 생성 시각
	UpdatedAt  time.Time   `json:"updatedAt"`                                      // 수정 시각

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`                                    // 주문자 정보
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems,omitempty"` // 주문 항목 목록
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem freezes the unit price at purchase time; later catalog price
// changes never affect recorded orders.
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`           // 주문 항목 ID
	OrderID   uint      `gorm:"not null;index" json:"orderId"`  // 주문 ID
	ItemID    uint      `gorm:"not null;index" json:"itemId"`   // 아이템 ID
	Quantity  int       `gorm:"not null" json:"quantity"`       // 수량
	Price     int       `gorm:"not null" json:"price"`          // 구매 시점 단가 (골드)
	CreatedAt time.Time `json:"createdAt"`                      // 생성 시각

	Order Order `gorm:"foreignKey:OrderID" json:"-"`             // 주문 정보
	Item  Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"` // 아이템 정보
}

func (OrderItem) TableName() string {
	return "order_items"
}
