// internal/testcontent/shuffle.go
package testcontent

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// ShuffleMode はコンテンツの分割単位を指定します。
type ShuffleMode int

const (
	ShuffleNone ShuffleMode = iota
	ShuffleSentences
	ShuffleParagraphs
)

// 文境界: [.?!] の直後に空白が続く位置で区切る
var sentenceBoundary = regexp.MustCompile(`[.?!]\s+`)

// SplitUnits はコンテンツを並べ替え単位に分割します。
//   - ShuffleSentences: 各行をtrimした上で文境界で分割し、行をまたいで連結
//   - ShuffleParagraphs: 空行区切りで分割し、空の段落は捨てる
//   - ShuffleNone: 1行を1単位とする
//
// 返り値の並びが正解順（原文の出現順）です。
func SplitUnits(raw string, mode ShuffleMode) []string {
	switch mode {
	case ShuffleSentences:
		var units []string
		for _, line := range splitLines(raw) {
			units = append(units, splitSentences(strings.TrimSpace(line))...)
		}
		return units
	case ShuffleParagraphs:
		var units []string
		for _, para := range strings.Split(raw, "\n\n") {
			para = strings.TrimSpace(para)
			if para != "" {
				units = append(units, para)
			}
		}
		return units
	default:
		units := splitLines(raw)
		for i, u := range units {
			units[i] = strings.TrimSpace(u)
		}
		return units
	}
}

func splitSentences(line string) []string {
	var units []string
	last := 0
	for _, m := range sentenceBoundary.FindAllStringIndex(line, -1) {
		// 区切り文字([.?!])までを文に含め、後続の空白は捨てる
		units = append(units, line[last:m[0]+1])
		last = m[1]
	}
	units = append(units, line[last:])
	return units
}

// Unit は提示用にIDを割り当てた1単位です。IDは提示順に item_1, item_2, ...
// と振られ、元の位置とは無関係です。
type Unit struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// ShuffledContent は並べ替えテストの提示順と採点用の正解順を保持します。
// Original は絶対にシャッフルされません。
// 不変条件: Items の内容の多重集合 == Original の多重集合。
type ShuffledContent struct {
	Original []string `json:"original"`
	Items    []Unit   `json:"items"`

	byID map[string]string
}

// Shuffle は単位列から提示順（一様ランダムな順列）を作ります。
// rng を注入するのはテストで順列を固定するためです。本番は時刻シードで構いません。
func Shuffle(units []string, rng *rand.Rand) *ShuffledContent {
	original := make([]string, len(units))
	copy(original, units)

	presented := make([]string, len(units))
	copy(presented, units)
	rng.Shuffle(len(presented), func(i, j int) {
		presented[i], presented[j] = presented[j], presented[i]
	})

	items := make([]Unit, len(presented))
	for i, content := range presented {
		items[i] = Unit{ID: fmt.Sprintf("item_%d", i+1), Content: content}
	}
	return &ShuffledContent{Original: original, Items: items}
}

// ContentOf はIDから提示内容を引きます。
func (sc *ShuffledContent) ContentOf(id string) (string, bool) {
	if sc.byID == nil {
		sc.byID = make(map[string]string, len(sc.Items))
		for _, it := range sc.Items {
			sc.byID[it.ID] = it.Content
		}
	}
	content, ok := sc.byID[id]
	return content, ok
}

// ModeOf はテストのフラグから分割モードを決めます。両方立っていた場合は
// 文シャッフルを優先します。
func ModeOf(shuffleSentences, shuffleParagraphs bool) ShuffleMode {
	switch {
	case shuffleSentences:
		return ShuffleSentences
	case shuffleParagraphs:
		return ShuffleParagraphs
	default:
		return ShuffleNone
	}
}
