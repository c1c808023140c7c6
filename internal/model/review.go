// internal/model/review.go
package model

import "github.com/google/uuid"

// ReviewSessionState は復習ウォークスルーの進行状態です。
// セッションストアにJSONで保存し、リクエスト間で持ち回ります。
// Practice が true の間はスケジュール状態を一切更新しません。
type ReviewSessionState struct {
	ItemIDs  []uuid.UUID `json:"item_ids"`
	Index    int         `json:"index"`
	Practice bool        `json:"practice"`
}

// ReviewSessionResponse はセッション開始レスポンスDTO
type ReviewSessionResponse struct {
	Total    int  `json:"total"`
	Practice bool `json:"practice"`
}

// ReviewQuestionResponse は出題1件のレスポンスDTO。
// Choices には正解の訳とダミー選択肢を混ぜてシャッフル済みで入れます。
type ReviewQuestionResponse struct {
	VocabularyID uuid.UUID `json:"vocabulary_id"`
	Word         string    `json:"word"`
	Choices      []string  `json:"choices"`
	Position     int       `json:"position"` // 1始まり
	Total        int       `json:"total"`
	Practice     bool      `json:"practice"`
}

// SubmitAnswerRequest は解答送信リクエストのDTO
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// SubmitAnswerResponse は解答送信レスポンスDTO。
// Completed が true ならウォークスルー完了（セッション状態は破棄済み）。
type SubmitAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Completed     bool   `json:"completed"`
	Practice      bool   `json:"practice"`
	Position      int    `json:"position"`
	Total         int    `json:"total"`
}
