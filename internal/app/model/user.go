package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // 사용자 권한 타입

const (
	RoleUser  UserRole = "ROLE_USER"  // 일반 사용자 권한
	RoleAdmin UserRole = "ROLE_ADMIN" // 관리자 권한
)

type AuthProvider string // 가입 경로

const (
	ProviderLocal    AuthProvider = "local"    // 이메일/비밀번호 가입
	ProviderKakao    AuthProvider = "kakao"    // 카카오 로그인
	ProviderFirebase AuthProvider = "firebase" // Firebase 로그인
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                             // 사용자 ID
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`                                // 이메일
	PasswordHash string         `gorm:"not null" json:"-"`                                                // 비밀번호 해시 (소셜 계정은 더미 해시)
	Nickname     string         `gorm:"not null" json:"nickname"`                                         // 닉네임
	Role         UserRole       `gorm:"type:varchar(20);default:'ROLE_USER'" json:"role"`                 // 권한
	Provider     AuthProvider   `gorm:"type:varchar(20);default:'local';uniqueIndex:idx_users_provider_identity" json:"provider"` // 가입 경로
	ProviderID   *string        `gorm:"type:varchar(128);uniqueIndex:idx_users_provider_identity" json:"-"`                       // 외부 계정 식별자
	CreatedAt    time.Time      `json:"createdAt"`                                                        // 생성 시각
	UpdatedAt    time.Time      `json:"updatedAt"`                                                        // 수정 시각
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                                   // 삭제 시각(소프트 삭제)
}

func (User) TableName() string {
	return "users"
}
