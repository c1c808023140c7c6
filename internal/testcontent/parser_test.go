// internal/testcontent/parser_test.go
package testcontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Blank(t *testing.T) {
	// シナリオ: 穴埋め1問
	pc := Parse("The capital of France is [Paris].")

	require.Len(t, pc.Fields, 1)
	f := pc.Fields[0]
	assert.Equal(t, "q1", f.ID)
	assert.Equal(t, FieldBlank, f.Kind)
	assert.Equal(t, "Paris", f.Answer)
	assert.Nil(t, f.Options)

	// 行は 地の文 + 解答欄 + 地の文 の3セグメント
	require.Len(t, pc.Lines, 1)
	require.Len(t, pc.Lines[0], 3)
	assert.Equal(t, "The capital of France is ", pc.Lines[0][0].Text)
	assert.NotNil(t, pc.Lines[0][1].Field)
	assert.Equal(t, ".", pc.Lines[0][2].Text)
}

func TestParse_Dropdown(t *testing.T) {
	// シナリオ: ドロップダウン1問
	pc := Parse("#[Paris, London, Berlin] Paris# is the capital.")

	require.Len(t, pc.Fields, 1)
	f := pc.Fields[0]
	assert.Equal(t, "q1", f.ID)
	assert.Equal(t, FieldDropdown, f.Kind)
	assert.Equal(t, "Paris", f.Answer)
	assert.Equal(t, []string{"Paris", "London", "Berlin"}, f.Options)
}

func TestParse_IDOrder(t *testing.T) {
	// IDは行をまたいで発見順に q1, q2, ... と振られる
	raw := "First [one] and #[a, b] a# here.\nSecond [two]."
	pc := Parse(raw)

	require.Len(t, pc.Fields, 3)
	assert.Equal(t, "q1", pc.Fields[0].ID)
	assert.Equal(t, "one", pc.Fields[0].Answer)
	assert.Equal(t, "q2", pc.Fields[1].ID)
	assert.Equal(t, FieldDropdown, pc.Fields[1].Kind)
	assert.Equal(t, "q3", pc.Fields[2].ID)
	assert.Equal(t, "two", pc.Fields[2].Answer)
}

func TestParse_DropdownBeforeBlank(t *testing.T) {
	// ドロップダウンの角括弧が穴埋めとして誤検出されないこと
	pc := Parse("#[x, y] x#")

	require.Len(t, pc.Fields, 1)
	assert.Equal(t, FieldDropdown, pc.Fields[0].Kind)
}

func TestParse_MalformedBracketsStayLiteral(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "閉じ括弧なし", raw: "unclosed [bracket here"},
		{name: "空の角括弧", raw: "empty [] bracket"},
		{name: "ハッシュだけ", raw: "just a # mark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := Parse(tt.raw)
			assert.Empty(t, pc.Fields)
			require.Len(t, pc.Lines, 1)
			require.Len(t, pc.Lines[0], 1)
			assert.Equal(t, tt.raw, pc.Lines[0][0].Text)
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	// 採点は保存済みコンテンツを再パースするため、2回のパースは完全一致が必要
	raw := "Line [a] with #[p, q, r] q# fields.\n[b] starts the line."

	first := Parse(raw)
	second := Parse(raw)

	require.Equal(t, len(first.Fields), len(second.Fields))
	for i := range first.Fields {
		assert.Equal(t, first.Fields[i].ID, second.Fields[i].ID)
		assert.Equal(t, first.Fields[i].Kind, second.Fields[i].Kind)
		assert.Equal(t, first.Fields[i].Answer, second.Fields[i].Answer)
		assert.Equal(t, first.Fields[i].Options, second.Fields[i].Options)
	}
}

func TestParse_TrimsAnswersAndOptions(t *testing.T) {
	pc := Parse("#[ alpha , beta ]  gamma  # and [ delta ]")

	require.Len(t, pc.Fields, 2)
	assert.Equal(t, []string{"alpha", "beta"}, pc.Fields[0].Options)
	assert.Equal(t, "gamma", pc.Fields[0].Answer)
	assert.Equal(t, "delta", pc.Fields[1].Answer)
}

func TestParsedContent_AnswerFor(t *testing.T) {
	pc := Parse("[a] [b]")

	answer, ok := pc.AnswerFor("q2")
	require.True(t, ok)
	assert.Equal(t, "b", answer)

	_, ok = pc.AnswerFor("q99")
	assert.False(t, ok)
}
