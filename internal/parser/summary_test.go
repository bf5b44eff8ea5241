package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractSummaryStopKeyword 触发词之后逐行收集，撞到下一章节标题词停止
func TestExtractSummaryStopKeyword(t *testing.T) {
	text := "John Smith\nSUMMARY\nSeasoned backend engineer.\nLoves distributed systems.\nEXPERIENCE\nEngineer - Acme"

	summary := NewSummaryExtractor().Extract(text)

	assert.Equal(t, "Seasoned backend engineer. Loves distributed systems.", summary, "多行用空格连接，标题词行本身不收")
}

// TestExtractSummaryBlankLineEnds 已收集到内容后的空行视为概要结束
func TestExtractSummaryBlankLineEnds(t *testing.T) {
	text := "PROFILE\nDelivers reliable services.\n\nExtra trailing text"

	summary := NewSummaryExtractor().Extract(text)

	assert.Equal(t, "Delivers reliable services.", summary)
}

// TestExtractSummaryLeadingBlankTolerated 触发词和正文之间的空行不影响收集
func TestExtractSummaryLeadingBlankTolerated(t *testing.T) {
	text := "OBJECTIVE\n\nBuild dependable data platforms."

	summary := NewSummaryExtractor().Extract(text)

	assert.Equal(t, "Build dependable data platforms.", summary)
}

const longSummaryParagraph = "Seasoned engineer who has designed, built, and operated large scale distributed ingestion systems for a decade."

// TestExtractSummaryParagraphFallback 没有触发词时退回段落启发式：
// 取第2或第3个段落中首个超过100字符的段落
func TestExtractSummaryParagraphFallback(t *testing.T) {
	text := "John Smith\njohn@x.com\n\n" + longSummaryParagraph + "\n\nEngineer - Acme\n2019 - present"

	summary := NewSummaryExtractor().Extract(text)

	assert.Equal(t, longSummaryParagraph, summary)
}

// TestExtractSummaryFallbackSkipsFirstParagraph 第1个段落即使够长也被跳过
func TestExtractSummaryFallbackSkipsFirstParagraph(t *testing.T) {
	text := longSummaryParagraph + "\n\nShort blurb."

	summary := NewSummaryExtractor().Extract(text)

	assert.Equal(t, "", summary, "首段通常是姓名和联系方式，不参与退回策略")
}

// TestExtractSummaryNothingFound 无触发词且段落都不够长时返回空串
func TestExtractSummaryNothingFound(t *testing.T) {
	text := "John Smith\n\nShort blurb.\n\nAnother short one."

	summary := NewSummaryExtractor().Extract(text)

	assert.Equal(t, "", summary)
}
