// internal/testcontent/evaluate.go
package testcontent

import (
	"fmt"

	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/textnorm"
)

// Result は採点結果です。
type Result struct {
	Score int
	Total int
}

// ScoreFields は穴埋め・ドロップダウンテストを採点します。
// 提出に存在しないフィールドIDは空文字として扱い、エラーにはしません。
// 未回答（空白のみ含む）は単に不正解として数えます。
// 比較は textnorm.Fold（trim + 小文字化）です。
func ScoreFields(pc *ParsedContent, answers map[string]string) Result {
	res := Result{Total: len(pc.Fields)}
	for _, f := range pc.Fields {
		submitted := answers[f.ID]
		if textnorm.Fold(submitted) == "" {
			continue
		}
		if textnorm.Fold(submitted) == textnorm.Fold(f.Answer) {
			res.Score++
		}
	}
	return res
}

// ScoreOrder は並べ替えテストを採点します。
// 提出されたID列の長さが正解順と一致しない場合は全体を拒否し
// model.ErrValidation を返します。部分採点はしません。
// 一致する場合は位置ごとに、IDを内容に解決して正解順と厳密比較します。
func ScoreOrder(sc *ShuffledContent, submitted []string) (Result, error) {
	if len(submitted) != len(sc.Original) {
		return Result{}, model.NewAppError(
			"ORDER_COUNT_MISMATCH",
			fmt.Sprintf("提出された項目数(%d)が元の項目数(%d)と一致しません。", len(submitted), len(sc.Original)),
			"item_order",
			model.ErrValidation,
		)
	}

	res := Result{Total: len(sc.Original)}
	for i, id := range submitted {
		content, ok := sc.ContentOf(id)
		if ok && content == sc.Original[i] {
			res.Score++
		}
	}
	return res, nil
}
