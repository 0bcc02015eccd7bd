package model

import (
	"time"

	"gorm.io/gorm"
)

type Rarity string // 아이템 희귀도

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// ValidRarity reports whether s is a known rarity value
func ValidRarity(s string) bool {
	switch Rarity(s) {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

type Item struct {
	ID            uint           `gorm:"primarykey" json:"id"`                          // 아이템 ID
	Name          string         `gorm:"not null;index" json:"name"`                    // 아이템 이름
	Description   string         `gorm:"type:text" json:"description"`                  // 설명
	Price         int            `gorm:"not null;check:price >= 0" json:"price"`        // 가격 (골드)
	Rarity        Rarity         `gorm:"type:varchar(20);not null;index" json:"rarity"` // 희귀도
	StatInt       int            `gorm:"default:0" json:"statInt"`                      // 지능 스탯
	StatStr       int            `gorm:"default:0" json:"statStr"`                      // 힘 스탯
	StatDex       int            `gorm:"default:0" json:"statDex"`                      // 민첩 스탯
	StatLck       int            `gorm:"default:0" json:"statLck"`                      // 행운 스탯
	CsTag         string         `gorm:"type:varchar(100);index" json:"csTag"`          // CS 주제 태그 (예: algorithm, network)
	StockQuantity int            `gorm:"default:0" json:"stockQuantity"`                // 재고 수량
	IsActive      bool           `gorm:"not null;index" json:"isActive"`                // 판매 여부
	CategoryID    *uint          `gorm:"index" json:"categoryId,omitempty"`             // 카테고리 ID
	CreatedAt     time.Time      `json:"createdAt"`                                     // 생성 시각
	UpdatedAt     time.Time      `json:"updatedAt"`                                     // 수정 시각
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                // 삭제 시각(소프트 삭제)

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 카테고리 정보
}

func (Item) TableName() string {
	return "items"
}
