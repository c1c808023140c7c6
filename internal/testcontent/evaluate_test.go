// internal/testcontent/evaluate_test.go
package testcontent

import (
	"errors"
	"math/rand"
	"testing"

	"go_5_quiz_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFields(t *testing.T) {
	pc := Parse("The capital of France is [Paris].\n#[red, green, blue] blue# is the sky.")
	require.Len(t, pc.Fields, 2)

	tests := []struct {
		name    string
		answers map[string]string
		want    Result
	}{
		{
			name:    "正常系: 大文字小文字を無視して全問正解",
			answers: map[string]string{"q1": "paris", "q2": "Blue"},
			want:    Result{Score: 2, Total: 2},
		},
		{
			name:    "正常系: 前後の空白は無視",
			answers: map[string]string{"q1": "  Paris ", "q2": "blue"},
			want:    Result{Score: 2, Total: 2},
		},
		{
			name:    "正常系: 欠けたIDは空回答として不正解扱い",
			answers: map[string]string{"q1": "Paris"},
			want:    Result{Score: 1, Total: 2},
		},
		{
			name:    "正常系: 空回答は不正解として数えるだけでエラーにしない",
			answers: map[string]string{"q1": "   ", "q2": ""},
			want:    Result{Score: 0, Total: 2},
		},
		{
			name:    "正常系: 提出が空でもtotalはフィールド数",
			answers: nil,
			want:    Result{Score: 0, Total: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreFields(pc, tt.answers))
		})
	}
}

func TestScoreFields_CaseInsensitiveScenario(t *testing.T) {
	// 穴埋め "paris" 提出 → 1/1
	pc := Parse("The capital of France is [Paris].")
	res := ScoreFields(pc, map[string]string{"q1": "paris"})
	assert.Equal(t, Result{Score: 1, Total: 1}, res)
}

func TestScoreOrder(t *testing.T) {
	// 3文の並べ替え
	units := SplitUnits("Alpha. Beta. Gamma.", ShuffleSentences)
	require.Equal(t, []string{"Alpha.", "Beta.", "Gamma."}, units)
	sc := Shuffle(units, rand.New(rand.NewSource(7)))

	// 提示IDを正解順（原文順）に並べた提出を作る
	idOf := func(content string) string {
		for _, it := range sc.Items {
			if it.Content == content {
				return it.ID
			}
		}
		t.Fatalf("unit not found: %q", content)
		return ""
	}
	perfect := []string{idOf("Alpha."), idOf("Beta."), idOf("Gamma.")}

	t.Run("正常系: 正解順の提出は満点", func(t *testing.T) {
		res, err := ScoreOrder(sc, perfect)
		require.NoError(t, err)
		assert.Equal(t, Result{Score: 3, Total: 3}, res)
	})

	t.Run("正常系: 1箇所だけ合っている並び", func(t *testing.T) {
		// 先頭だけ正解位置、残り2つを入れ替え
		swapped := []string{perfect[0], perfect[2], perfect[1]}
		res, err := ScoreOrder(sc, swapped)
		require.NoError(t, err)
		assert.Equal(t, Result{Score: 1, Total: 3}, res)
	})

	t.Run("異常系: 項目数が一致しない提出は全体を拒否", func(t *testing.T) {
		res, err := ScoreOrder(sc, perfect[:2])
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, Result{}, res, "部分採点は返さない")

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ORDER_COUNT_MISMATCH", appErr.Detail.Code)
	})

	t.Run("異常系: 多すぎる提出も拒否", func(t *testing.T) {
		_, err := ScoreOrder(sc, append(append([]string(nil), perfect...), "item_4"))
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("正常系: 未知のIDは不正解として数える", func(t *testing.T) {
		res, err := ScoreOrder(sc, []string{"item_99", perfect[1], perfect[2]})
		require.NoError(t, err)
		assert.Equal(t, Result{Score: 2, Total: 3}, res)
	})
}
