// internal/textnorm/normalize_test.go
package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "正常系: 小文字化", input: "Paris", want: "paris"},
		{name: "正常系: アクセント付き文字は分解して基底文字だけ残る", input: "café", want: "cafe"},
		{name: "正常系: 合成済みウムラウト", input: "Müller", want: "muller"},
		{name: "正常系: 数字と記号は捨てる", input: "abc-123!?", want: "abc"},
		{name: "正常系: 空白も捨てる", input: "  New York  ", want: "newyork"},
		{name: "正常系: キリル文字", input: "Привет", want: "привет"},
		{name: "正常系: 空文字列", input: "", want: ""},
		{name: "正常系: 記号のみ", input: "123 !?", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Paris", "café", "Müller", "Привет мир", "a1b2 c3", "", "ÀÉÎÕÜ"}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "Normalizeは冪等であること: %q", s)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "paris", Fold("  Paris "))
	// Foldは分解しない（非対称は意図的）
	assert.Equal(t, "café", Fold("Café"))
	assert.Equal(t, "", Fold("   "))
}
