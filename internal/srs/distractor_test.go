// internal/srs/distractor_test.go
package srs

import (
	"math/rand"
	"testing"

	"go_5_quiz_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickDistractors(t *testing.T) {
	pool := []string{"りんご", "みかん", "ぶどう", "もも", "なし"}

	t.Run("正常系: 候補が十分にあれば重複なしでn個選ぶ", func(t *testing.T) {
		picked, err := PickDistractors("りんご", pool, 3, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		require.Len(t, picked, 3)

		seen := map[string]bool{}
		for _, p := range picked {
			assert.NotEqual(t, "りんご", p, "正解は選ばれない")
			assert.False(t, seen[p], "重複しない")
			seen[p] = true
			assert.Contains(t, pool, p)
		}
	})

	t.Run("正常系: 候補が足りないときは循環して埋める", func(t *testing.T) {
		picked, err := PickDistractors("りんご", []string{"りんご", "みかん"}, 3, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		assert.Equal(t, []string{"みかん", "みかん", "みかん"}, picked)
	})

	t.Run("正常系: 正解との比較は大文字小文字と空白を無視", func(t *testing.T) {
		picked, err := PickDistractors("Apple", []string{" apple ", "banana"}, 1, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		assert.Equal(t, []string{"banana"}, picked)
	})

	t.Run("異常系: 候補が1つもない場合はエラー", func(t *testing.T) {
		_, err := PickDistractors("りんご", []string{"りんご"}, 3, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, model.ErrInsufficientData)
	})

	t.Run("異常系: 空のプールはエラー", func(t *testing.T) {
		_, err := PickDistractors("りんご", nil, 3, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, model.ErrInsufficientData)
	})

	t.Run("正常系: 固定シードで再現可能", func(t *testing.T) {
		first, err := PickDistractors("りんご", pool, 3, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		second, err := PickDistractors("りんご", pool, 3, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
