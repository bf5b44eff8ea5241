package parser

import (
	"regexp"
	"strings"

	"resume-parser-go/internal/types"
)

// EntityTagger 实体识别能力的抽象
// 任何能在文本中找出PERSON/LOCATION区间的实现均可注入
type EntityTagger interface {
	Tag(text string) []types.EntitySpan
}

// HeuristicEntityTagger 基于正则和大小写形态的轻量实体识别器
// 用规则近似统计式NER：召回率有限，但无外部模型依赖、结果可复现
type HeuristicEntityTagger struct{}

var _ EntityTagger = (*HeuristicEntityTagger)(nil)

// NewHeuristicEntityTagger 创建启发式实体识别器
func NewHeuristicEntityTagger() *HeuristicEntityTagger {
	return &HeuristicEntityTagger{}
}

var (
	// 人名候选行：2-4个首字母大写的词，允许连字符和撇号，不含数字
	personLineRe = regexp.MustCompile(`^[A-Z][a-zA-Z'\-]*(?: [A-Z][a-zA-Z'.\-]*){1,3}$`)

	// 地点形态：City, ST 或 City, State（州名首字母大写）
	locationRe = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)?, (?:[A-Z]{2}\b|[A-Z][a-z]+)`)
)

// Tag 在文本中标注PERSON和LOCATION区间，按出现顺序返回
func (t *HeuristicEntityTagger) Tag(text string) []types.EntitySpan {
	var spans []types.EntitySpan

	// 人名只在文档开头的行中找：简历的姓名几乎总在头部
	offset := 0
	lineCount := 0
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line != "" {
			lineCount++
			if lineCount > 10 {
				break
			}
			if personLineRe.MatchString(line) && !containsDigit(line) {
				start := offset + strings.Index(rawLine, line)
				spans = append(spans, types.EntitySpan{
					Text:  line,
					Label: types.EntityPerson,
					Start: start,
				})
			}
		}
		offset += len(rawLine) + 1
	}

	// 地点在全文中找
	for _, loc := range locationRe.FindAllStringIndex(text, -1) {
		spans = append(spans, types.EntitySpan{
			Text:  text[loc[0]:loc[1]],
			Label: types.EntityLocation,
			Start: loc[0],
		})
	}

	return spans
}

func containsDigit(s string) bool {
	return strings.IndexAny(s, "0123456789") >= 0
}
