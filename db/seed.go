package db

import (
	"time"

	"snackgames/models"

	"gorm.io/gorm"
)

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

func strptr(s string) *string { return &s }

var seedGames = []models.Game{
	{
		Title:        "메모리 게임",
		Description:  "카드를 뒤집어 같은 그림 2개를 찾는 기억력 게임입니다. 가능한 적은 횟수로 모든 카드를 맞춰보세요!",
		URL:          "internal://memory-game",
		Category:     "puzzle",
		Tags:         models.StringSlice{"퍼즐", "기억력", "카드", "두뇌"},
		EmbedAllowed: true,
		CreatedAt:    ts("2024-01-20T00:00:00Z"),
		UpdatedAt:    ts("2024-01-20T00:00:00Z"),
	},
	{
		Title:        "수박게임",
		Description:  "과일을 합쳐서 큰 수박을 만드는 중독성 있는 퍼즐 게임입니다. 같은 과일끼리 합치면 더 큰 과일이 되고, 최종 목표는 수박을 만드는 것입니다.",
		URL:          "https://suika-game.app/ko",
		Thumbnail:    strptr("https://suika-game.app/game/img/suika_512_green.png"),
		Category:     "puzzle",
		Tags:         models.StringSlice{"퍼즐", "캐주얼", "과일", "합치기"},
		EmbedAllowed: true,
		PlayCount:    1520,
		AvgRating:    4.5,
		RatingCount:  324,
		CreatedAt:    ts("2024-01-01T00:00:00Z"),
		UpdatedAt:    ts("2024-01-01T00:00:00Z"),
	},
	{
		Title:        "메이플퍼즐 블록매치",
		Description:  "메이플스토리 캐릭터들과 함께하는 블록 매치 퍼즐 게임입니다. 같은 블록을 3개 이상 연결하여 제거하고 스테이지를 클리어하세요.",
		URL:          "https://maplepuzzle.nexon.com/welcome/index.html",
		Thumbnail:    strptr("https://maplepuzzle.nexon.com/common/img/og_image.jpg"),
		Category:     "puzzle",
		Tags:         models.StringSlice{"퍼즐", "메이플스토리", "블록매치", "넥슨"},
		EmbedAllowed: true,
		PlayCount:    892,
		AvgRating:    4.2,
		RatingCount:  156,
		CreatedAt:    ts("2024-01-02T00:00:00Z"),
		UpdatedAt:    ts("2024-01-02T00:00:00Z"),
	},
	{
		Title:        "온라인 타자교실",
		Description:  "한글과 영어 타자 연습을 할 수 있는 온라인 타자 연습 프로그램입니다. 다양한 연습 모드와 게임으로 타자 실력을 향상시키세요.",
		URL:          "https://typing.zidell.me/",
		Category:     "education",
		Tags:         models.StringSlice{"교육", "타자", "연습", "한글", "영어"},
		EmbedAllowed: true,
		PlayCount:    2341,
		AvgRating:    4.7,
		RatingCount:  512,
		CreatedAt:    ts("2024-01-03T00:00:00Z"),
		UpdatedAt:    ts("2024-01-03T00:00:00Z"),
	},
	{
		Title:        "이상형 월드컵",
		Description:  "나만의 이상형을 찾아가는 재미있는 토너먼트 게임입니다. 다양한 주제의 월드컵으로 취향을 테스트해보세요.",
		URL:          "https://www.piku.co.kr/",
		Thumbnail:    strptr("https://www.piku.co.kr/images/piku_og.png"),
		Category:     "entertainment",
		Tags:         models.StringSlice{"엔터테인먼트", "이상형", "월드컵", "토너먼트"},
		EmbedAllowed: true,
		PlayCount:    3156,
		AvgRating:    4.3,
		RatingCount:  721,
		CreatedAt:    ts("2024-01-04T00:00:00Z"),
		UpdatedAt:    ts("2024-01-04T00:00:00Z"),
	},
}

var seedComments = []models.Comment{
	{GameID: 2, Nickname: "과일러버", Content: "정말 중독성 있어요! 한번 시작하면 멈출 수가 없네요 ㅋㅋ", CreatedAt: ts("2024-01-15T10:30:00Z"), UpdatedAt: ts("2024-01-15T10:30:00Z")},
	{GameID: 2, Nickname: "게임고수", Content: "수박 만들기 진짜 어렵다... 아직도 못 만들어봄", CreatedAt: ts("2024-01-16T14:20:00Z"), UpdatedAt: ts("2024-01-16T14:20:00Z")},
	{GameID: 3, Nickname: "메이플팬", Content: "메이플 캐릭터들이 귀여워서 더 재밌어요!", CreatedAt: ts("2024-01-17T09:15:00Z"), UpdatedAt: ts("2024-01-17T09:15:00Z")},
	{GameID: 4, Nickname: "타자초보", Content: "덕분에 타자 실력이 많이 늘었습니다. 추천!", CreatedAt: ts("2024-01-18T16:45:00Z"), UpdatedAt: ts("2024-01-18T16:45:00Z")},
	{GameID: 5, Nickname: "월드컵마니아", Content: "이상형 월드컵 진짜 재밌어요! 시간 가는 줄 모름", CreatedAt: ts("2024-01-19T11:00:00Z"), UpdatedAt: ts("2024-01-19T11:00:00Z")},
}

var seedRatings = []models.Rating{
	{GameID: 2, VisitorID: "visitor-001", Score: 5, CreatedAt: ts("2024-01-15T10:30:00Z")},
	{GameID: 2, VisitorID: "visitor-002", Score: 4, CreatedAt: ts("2024-01-16T14:20:00Z")},
	{GameID: 3, VisitorID: "visitor-001", Score: 4, CreatedAt: ts("2024-01-17T09:15:00Z")},
	{GameID: 4, VisitorID: "visitor-003", Score: 5, CreatedAt: ts("2024-01-18T16:45:00Z")},
	{GameID: 5, VisitorID: "visitor-002", Score: 4, CreatedAt: ts("2024-01-19T11:00:00Z")},
}

// SeedIfEmpty loads the initial catalog when the games table has no
// rows. Comments and ratings reference the seeded game ids, so they
// are only inserted together with the games.
func SeedIfEmpty(g *gorm.DB) error {
	var count int64
	if err := g.Model(&models.Game{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return g.Transaction(func(tx *gorm.DB) error {
		games := make([]models.Game, len(seedGames))
		copy(games, seedGames)
		if err := tx.Create(&games).Error; err != nil {
			return err
		}
		comments := make([]models.Comment, len(seedComments))
		copy(comments, seedComments)
		if err := tx.Create(&comments).Error; err != nil {
			return err
		}
		ratings := make([]models.Rating, len(seedRatings))
		copy(ratings, seedRatings)
		return tx.Create(&ratings).Error
	})
}
