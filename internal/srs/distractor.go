// internal/srs/distractor.go
package srs

import (
	"math/rand"

	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/textnorm"

	"github.com/samber/lo"
)

// PickDistractors は選択式出題の誤答候補を n 個選びます。
// pool から正解と同一（大文字小文字・前後空白を無視）の候補を除外した上で、
//   - 候補が n 個以上あれば一様ランダムに n 個を選ぶ
//   - 候補が1個以上 n 個未満なら先頭から循環して n 個まで埋める
//   - 候補が1個もなければ model.ErrInsufficientData を返す
//
// rng は注入式です。テストでは固定シードで順列を再現できます。
func PickDistractors(correct string, pool []string, n int, rng *rand.Rand) ([]string, error) {
	folded := textnorm.Fold(correct)
	candidates := lo.Filter(pool, func(s string, _ int) bool {
		return textnorm.Fold(s) != folded
	})

	if len(candidates) == 0 {
		return nil, model.NewAppError(
			"INSUFFICIENT_DATA",
			"誤答の選択肢を作るための語彙が不足しています。",
			"",
			model.ErrInsufficientData,
		)
	}

	if len(candidates) >= n {
		picked := make([]string, 0, n)
		for _, idx := range rng.Perm(len(candidates))[:n] {
			picked = append(picked, candidates[idx])
		}
		return picked, nil
	}

	// 足りない分は先頭から循環して埋める
	picked := make([]string, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, candidates[i%len(candidates)])
	}
	return picked, nil
}
