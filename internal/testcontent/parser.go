// internal/testcontent/parser.go
package testcontent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// マークアップのパターン。ドロップダウンを先に試すこと。
// ドロップダウンの角括弧は穴埋めパターンにもマッチしてしまうため、順序が意味を持ちます。
var (
	dropdownPattern = regexp.MustCompile(`#\s*\[([^\]]+)\]\s*([^#]+)\s*#`)
	blankPattern    = regexp.MustCompile(`\[([^\]]+)\]`)
)

type FieldKind string

const (
	FieldBlank    FieldKind = "blank"
	FieldDropdown FieldKind = "dropdown"
)

// Field はコンテンツから抽出した解答欄1つです。IDは q1, q2, ... と
// コンテンツ全体の発見順（左→右、上→下）で採番されます。
type Field struct {
	ID      string    `json:"id"`
	Kind    FieldKind `json:"kind"`
	Answer  string    `json:"answer"`
	Options []string  `json:"options,omitempty"` // Dropdownのみ
}

// Segment は行の構成要素です。Fieldがnilなら地の文（Text）です。
type Segment struct {
	Text  string
	Field *Field
}

// ParsedContent はパース済みのテストコンテンツです。
// リクエスト毎に生テキストから再計算され、永続化されません。
// 同じ生テキストに対するパース結果は常に同一です（採点時に再パースするため必須）。
type ParsedContent struct {
	Lines  [][]Segment
	Fields []*Field
}

// AnswerFor はフィールドIDに対応する正解を返します。
func (pc *ParsedContent) AnswerFor(id string) (string, bool) {
	for _, f := range pc.Fields {
		if f.ID == id {
			return f.Answer, true
		}
	}
	return "", false
}

// parser はID採番カウンタを持ちます。クロージャの共有可変カウンタではなく、
// 明示的にこの値を引き回します。
type parser struct {
	nextID int
	fields []*Field
}

// Parse は生のマークアップを行ごとの地の文と解答欄の列に変換します。
// どちらのパターンにもマッチしない角括弧はそのまま地の文として残ります
// （パースエラーは発生しません）。
func Parse(raw string) *ParsedContent {
	p := &parser{}
	pc := &ParsedContent{}
	for _, line := range splitLines(raw) {
		pc.Lines = append(pc.Lines, p.parseLine(line))
	}
	pc.Fields = p.fields
	return pc
}

func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func (p *parser) newField(kind FieldKind, answer string, options []string) *Field {
	p.nextID++
	f := &Field{
		ID:      fmt.Sprintf("q%d", p.nextID),
		Kind:    kind,
		Answer:  answer,
		Options: options,
	}
	p.fields = append(p.fields, f)
	return f
}

// parseLine は1行をセグメント列に変換します。まずドロップダウン、
// 残った地の文に対して穴埋めパターンを適用します。
func (p *parser) parseLine(line string) []Segment {
	var segs []Segment
	last := 0
	for _, m := range dropdownPattern.FindAllStringSubmatchIndex(line, -1) {
		segs = append(segs, p.parseBlanks(line[last:m[0]])...)
		options := lo.Map(strings.Split(line[m[2]:m[3]], ","), func(opt string, _ int) string {
			return strings.TrimSpace(opt)
		})
		answer := strings.TrimSpace(line[m[4]:m[5]])
		segs = append(segs, Segment{Field: p.newField(FieldDropdown, answer, options)})
		last = m[1]
	}
	segs = append(segs, p.parseBlanks(line[last:])...)
	return segs
}

func (p *parser) parseBlanks(text string) []Segment {
	var segs []Segment
	last := 0
	for _, m := range blankPattern.FindAllStringSubmatchIndex(text, -1) {
		if chunk := text[last:m[0]]; chunk != "" {
			segs = append(segs, Segment{Text: chunk})
		}
		answer := strings.TrimSpace(text[m[2]:m[3]])
		segs = append(segs, Segment{Field: p.newField(FieldBlank, answer, nil)})
		last = m[1]
	}
	if chunk := text[last:]; chunk != "" {
		segs = append(segs, Segment{Text: chunk})
	}
	return segs
}
