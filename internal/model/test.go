// internal/model/test.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book はテストをまとめる教材（本）を表します
type Book struct {
	BookID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"book_id"`
	Title     string    `gorm:"not null;uniqueIndex" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Tests []Test `gorm:"foreignKey:BookID;references:BookID" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// Test は穴埋め・並べ替えテストを表します。
// Content は独自マークアップを含む生テキストで、リクエスト毎にパースし直します。
// ShuffleSentences / ShuffleParagraphs は排他的な想定ですが、両方立っていた場合は
// 文シャッフルを優先します（保存時に強制はしません）。
type Test struct {
	TestID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"test_id"`
	BookID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"book_id"`
	Name              string         `gorm:"not null" json:"name"`
	Content           string         `gorm:"type:text;not null" json:"content"`
	TimeLimit         *int           `json:"time_limit,omitempty"` // 分単位、nilなら無制限
	ShuffleSentences  bool           `gorm:"not null;default:false" json:"shuffle_sentences"`
	ShuffleParagraphs bool           `gorm:"not null;default:false" json:"shuffle_paragraphs"`
	CreatedBy         uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Book *Book `gorm:"foreignKey:BookID;references:BookID" json:"-"`
}

func (Test) TableName() string {
	return "tests"
}

// TestResult は採点結果の追記専用レコードです。一度書いたら更新しません。
type TestResult struct {
	ResultID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"result_id"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TestID         uuid.UUID `gorm:"type:uuid;not null;index" json:"test_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (TestResult) TableName() string {
	return "test_results"
}

// LearnTestResult は満点でテストを完了した記録です。こちらも追記専用。
type LearnTestResult struct {
	LearnResultID uuid.UUID `gorm:"type:uuid;primaryKey" json:"learn_result_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TestID        uuid.UUID `gorm:"type:uuid;not null;index" json:"test_id"`
	CompletedAt   time.Time `gorm:"not null" json:"completed_at"`
}

func (LearnTestResult) TableName() string {
	return "learn_test_results"
}

// テスト作成リクエストDTO
type PostTestRequest struct {
	BookTitle         string `json:"book_title" validate:"required,min=1,max=150"`
	Name              string `json:"name" validate:"required,min=1,max=150"`
	Content           string `json:"content" validate:"required"`
	TimeLimit         *int   `json:"time_limit,omitempty" validate:"omitempty,min=1"`
	ShuffleSentences  bool   `json:"shuffle_sentences"`
	ShuffleParagraphs bool   `json:"shuffle_paragraphs"`
}

// テスト更新リクエストDTO
type PutTestRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=150"`
	Content           string `json:"content" validate:"required"`
	TimeLimit         *int   `json:"time_limit,omitempty" validate:"omitempty,min=1"`
	ShuffleSentences  bool   `json:"shuffle_sentences"`
	ShuffleParagraphs bool   `json:"shuffle_paragraphs"`
}

// RenderSegment は出題画面の1要素です。Kindが"text"なら地の文、
// "blank"/"dropdown"なら解答欄を表します。正解は含めません。
type RenderSegment struct {
	Kind    string   `json:"kind"` // text | blank | dropdown
	Text    string   `json:"text,omitempty"`
	FieldID string   `json:"field_id,omitempty"`
	Options []string `json:"options,omitempty"`
}

// RenderItem は並べ替えテストの1ピースです。
type RenderItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// TestView は出題（Render）フェーズのレスポンスDTO
type TestView struct {
	TestID    uuid.UUID         `json:"test_id"`
	Name      string            `json:"name"`
	Kind      string            `json:"kind"` // standard | drag_and_drop
	TimeLimit *int              `json:"time_limit,omitempty"`
	Total     int               `json:"total"`
	Lines     [][]RenderSegment `json:"lines,omitempty"`
	Items     []RenderItem      `json:"items,omitempty"`
}

// SubmitTestRequest は採点（Score）フェーズのリクエストDTO。
// 穴埋めテストでは Answers、並べ替えテストでは ItemOrder を使います。
type SubmitTestRequest struct {
	Answers   map[string]string `json:"answers,omitempty"`
	ItemOrder []string          `json:"item_order,omitempty"`
}

// FieldResult は解答欄ごとの採点結果です（再表示用）。
type FieldResult struct {
	FieldID       string `json:"field_id"`
	Submitted     string `json:"submitted"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// TestSubmissionResult は採点結果レスポンスDTO
type TestSubmissionResult struct {
	Score             int           `json:"score"`
	TotalQuestions    int           `json:"total_questions"`
	TimeLimitExceeded bool          `json:"time_limit_exceeded"`
	Fields            []FieldResult `json:"fields,omitempty"`
	CorrectOrder      []string      `json:"correct_order,omitempty"`
}
