package parser

import (
	"strings"

	"resume-parser-go/internal/constants"
)

// SummaryExtractor 概要抽取器
// 先找概要章节的触发词逐行收集，找不到再退回段落启发式
type SummaryExtractor struct{}

// NewSummaryExtractor 创建概要抽取器
func NewSummaryExtractor() *SummaryExtractor {
	return &SummaryExtractor{}
}

// Extract 从原始文本中抽取个人概要，找不到返回空字符串
func (s *SummaryExtractor) Extract(text string) string {
	lines := strings.Split(text, "\n")
	started := false
	var collected []string

	for _, line := range lines {
		lineLower := strings.ToLower(strings.TrimSpace(line))

		if !started {
			if containsAny(lineLower, constants.SummarySectionKeywords) {
				started = true
			}
			continue
		}

		if strings.TrimSpace(line) != "" {
			// 撞到下一个章节的标题词即停止，该行不收
			if containsAny(lineLower, constants.SummaryStopKeywords) {
				break
			}
			collected = append(collected, strings.TrimSpace(line))
		} else if len(collected) > 0 {
			// 已收集到内容后的空行视为概要结束
			break
		}
	}

	if len(collected) > 0 {
		return strings.Join(collected, " ")
	}

	// 退回策略：取第2或第3个段落中长度超过100的首个段落
	// 第1个段落通常是姓名和联系方式，跳过
	paragraphs := strings.Split(text, "\n\n")
	end := 3
	if end > len(paragraphs) {
		end = len(paragraphs)
	}
	for i := 1; i < end; i++ {
		para := strings.TrimSpace(paragraphs[i])
		if len(para) > 100 {
			return para
		}
	}
	return ""
}

// containsAny 判断字符串是否包含词表中的任意关键词
func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
