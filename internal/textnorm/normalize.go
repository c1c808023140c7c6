// internal/textnorm/normalize.go
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize は解答比較用に文字列を正規化します。
// NFDで分解（"é" → "e" + 結合アクセント）した上で、文字(Letter)以外を
// すべて捨てて小文字化します。数字・記号・結合記号は残りません。
// 復習（単語）側の解答比較はすべてこの関数を使います。
// 冪等です: Normalize(Normalize(s)) == Normalize(s)。
func Normalize(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Fold はテストコンテンツ側の軽量な解答比較です。trimと小文字化のみで、
// Unicode分解は行いません。復習側のNormalizeと非対称なのは既存挙動の維持で、
// 意図的なものです。
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
