package db

import (
	"math/rand"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"github.com/jmlee/fantasy-shop-backend/pkg/util"
	"gorm.io/gorm"
)

// 계층 구조 카테고리 시드
var categorySeed = []model.Category{
	// 최상위
	{ID: 1, Name: "전공 기초", Description: "CS 기본 이론 카테고리"},
	{ID: 2, Name: "장비", Description: "장비/무기/방어구 카테고리"},
	{ID: 3, Name: "소모품", Description: "포션/스크롤/버프 아이템"},

	// 전공 기초 하위
	{ID: 4, Name: "알고리즘", Description: "알고리즘 관련 스킬북/아이템", ParentID: uintPtr(1)},
	{ID: 5, Name: "자료구조", Description: "자료구조 관련 스킬북/아이템", ParentID: uintPtr(1)},
	{ID: 6, Name: "운영체제", Description: "OS, concurrency, process 관련", ParentID: uintPtr(1)},
	{ID: 7, Name: "네트워크", Description: "네트워크/프로토콜 관련", ParentID: uintPtr(1)},
	{ID: 8, Name: "데이터베이스", Description: "DB/트랜잭션 관련", ParentID: uintPtr(1)},

	// 장비 하위
	{ID: 9, Name: "무기", Description: "공격용 장비", ParentID: uintPtr(2)},
	{ID: 10, Name: "방어구", Description: "방어용 장비", ParentID: uintPtr(2)},
	{ID: 11, Name: "액세서리", Description: "반지/목걸이 등", ParentID: uintPtr(2)},

	// 소모품 하위
	{ID: 12, Name: "포션", Description: "버프/회복 포션", ParentID: uintPtr(3)},
	{ID: 13, Name: "스크롤", Description: "일회성 스킬 스크롤", ParentID: uintPtr(3)},
}

// itemDesign keeps the subject, csTag and item type consistent so generated
// names always match their tag.
type itemDesign struct {
	subject  string
	tag      string
	itemType string
}

var itemDesigns = []itemDesign{
	{"운영체제", "operating-system", "메모리 갑옷"},
	{"운영체제", "operating-system", "쓰레드 헬멧"},
	{"운영체제", "operating-system", "세마포어 방패"},

	{"컴퓨터구조", "computer-architecture", "레지스터 방패"},
	{"컴퓨터구조", "computer-architecture", "파이프라인 망토"},
	{"컴퓨터구조", "computer-architecture", "캐시 부적"},

	{"알고리즘", "algorithm", "DFS 스크롤"},
	{"알고리즘", "algorithm", "다익스트라 스킬북"},
	{"알고리즘", "algorithm", "그리디 포션"},

	{"자료구조", "datastructure", "스택 소드"},
	{"자료구조", "datastructure", "큐 블레이드"},
	{"자료구조", "datastructure", "힙 랜스"},

	{"정보보안", "security", "암호화 반지"},
	{"정보보안", "security", "방화벽 방패"},
	{"정보보안", "security", "침투테스트 단검"},

	{"AI", "ai", "AI 지팡이"},
	{"AI", "ai", "딥러닝 코어"},
	{"AI", "ai", "데이터셋 포션"},

	{"네트워크", "network", "패킷 단검"},
	{"네트워크", "network", "라우터 방패"},
	{"네트워크", "network", "스위치 부츠"},

	{"데이터베이스", "database", "트랜잭션 장갑"},
	{"데이터베이스", "database", "인덱스 반지"},
	{"데이터베이스", "database", "쿼리 스크롤"},

	{"웹서비스설계", "web-service", "엔드포인트 부츠"},
	{"웹서비스설계", "web-service", "API 스크롤"},
	{"웹서비스설계", "web-service", "로드밸런서 방패"},

	{"임베디드", "embedded", "회로 키트"},
	{"임베디드", "embedded", "센서 부츠"},
	{"임베디드", "embedded", "FPGA 로브"},

	{"컴파일러", "compiler", "파서 검"},
	{"컴파일러", "compiler", "렉서 단검"},
	{"컴파일러", "compiler", "IR 스크롤"},
}

var namePrefixes = []string{"마법", "강화", "전설", "희귀", "신비한", "고대", "불멸의"}

var rarityWeights = []struct {
	rarity model.Rarity
	weight float64
}{
	{model.RarityCommon, 0.5},
	{model.RarityRare, 0.3},
	{model.RarityEpic, 0.15},
	{model.RarityLegendary, 0.05},
}

const seedItemCount = 260

// Seed populates the category tree and generated shop items. Existing items
// and categories are replaced so repeated runs stay deterministic in shape.
func Seed(database *gorm.DB) error {
	logger.Info("Seeding initial data...")

	// FK 제약 때문에 먼저 아이템, 그다음 카테고리 삭제
	if err := database.Unscoped().Where("1 = 1").Delete(&model.Item{}).Error; err != nil {
		logger.Error("Failed to clear items", err)
		return err
	}
	if err := database.Where("1 = 1").Delete(&model.Category{}).Error; err != nil {
		logger.Error("Failed to clear categories", err)
		return err
	}

	if err := database.Create(&categorySeed).Error; err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}

	items := make([]model.Item, 0, seedItemCount)
	for i := 0; i < seedItemCount; i++ {
		prefix := namePrefixes[rand.Intn(len(namePrefixes))]
		design := itemDesigns[rand.Intn(len(itemDesigns))]
		category := categorySeed[rand.Intn(len(categorySeed))]

		items = append(items, model.Item{
			Name:          prefix + " " + design.subject + " " + design.itemType,
			Price:         randomInt(1000, 200000),
			Description:   "자동 생성된 CS Fantasy 아이템",
			Rarity:        pickWeightedRarity(),
			StatInt:       randomInt(0, 30),
			StatStr:       randomInt(0, 30),
			StatDex:       randomInt(0, 30),
			StatLck:       randomInt(0, 30),
			CsTag:         design.tag,
			StockQuantity: randomInt(0, 300),
			IsActive:      rand.Float64() > 0.05,
			CategoryID:    uintPtr(category.ID),
		})
	}

	if err := database.CreateInBatches(items, 100).Error; err != nil {
		logger.Error("Failed to seed items", err)
		return err
	}

	logger.Info("Seed completed", map[string]interface{}{
		"items":      len(items),
		"categories": len(categorySeed),
	})
	return nil
}

// SeedAdmin ensures an admin account exists with the given credentials
func SeedAdmin(database *gorm.DB, email, password, nickname string) error {
	var existing model.User
	err := database.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logger.Info("Admin account already exists, skipping...", map[string]interface{}{
			"email": email,
		})
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		Nickname:     nickname,
		Role:         model.RoleAdmin,
		Provider:     model.ProviderLocal,
	}
	if err := database.Create(&admin).Error; err != nil {
		logger.Error("Failed to create admin account", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	logger.Info("Admin account created", map[string]interface{}{
		"email": email,
	})
	return nil
}

func pickWeightedRarity() model.Rarity {
	r := rand.Float64()
	sum := 0.0
	for _, rw := range rarityWeights {
		sum += rw.weight
		if r <= sum {
			return rw.rarity
		}
	}
	return rarityWeights[len(rarityWeights)-1].rarity
}

func randomInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}

func uintPtr(v uint) *uint {
	return &v
}
