package model

import "time"

type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`              // 카테고리 ID
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`  // 카테고리 이름
	Description string    `gorm:"type:text" json:"description"`      // 설명
	ParentID    *uint     `gorm:"index" json:"parentId,omitempty"`   // 상위 카테고리 ID
	CreatedAt   time.Time `json:"createdAt"`                         // 생성 시각
	UpdatedAt   time.Time `json:"updatedAt"`                         // 수정 시각

	Parent   *Category  `gorm:"foreignKey:ParentID" json:"-"`                // 상위 카테고리
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"` // 하위 카테고리 목록
}

func (Category) TableName() string {
	return "categories"
}
