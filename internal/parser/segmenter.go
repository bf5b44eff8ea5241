package parser

import (
	"strings"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// SectionSegmenter 基于标题行启发式的章节分割器
// 标题判定条件：行长不超过50字符，且转小写后包含固定词表中的任意词
type SectionSegmenter struct{}

// NewSectionSegmenter 创建章节分割器
func NewSectionSegmenter() *SectionSegmenter {
	return &SectionSegmenter{}
}

// Segment 将原始文本切分为有序章节序列
// 空行直接丢弃，不作为章节边界；没有任何标题时返回单个空标题章节
func (s *SectionSegmenter) Segment(text string) []types.Section {
	var sections []types.Section
	current := types.Section{}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if IsSectionHeader(line) {
			// 已积累内容的章节先落袋，空章节被新标题直接替换
			if current.Content != "" {
				current.Content = strings.TrimSuffix(current.Content, "\n")
				sections = append(sections, current)
			}
			current = types.Section{Title: line}
			continue
		}
		current.Content += line + "\n"
	}

	// 最后一个打开的章节总是追加
	current.Content = strings.TrimSuffix(current.Content, "\n")
	sections = append(sections, current)
	return sections
}

// IsSectionHeader 判断一行是否为章节标题
func IsSectionHeader(line string) bool {
	if len(line) > constants.MaxHeaderLineLength {
		return false
	}
	lower := strings.ToLower(line)
	for _, keyword := range constants.SectionHeaderKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
