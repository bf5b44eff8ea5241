package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSegmentBasicSections 验证标题行能正确切分章节
func TestSegmentBasicSections(t *testing.T) {
	text := "John Smith\njohn@x.com\nSUMMARY\nSeasoned engineer.\nEXPERIENCE\nSoftware Engineer - Acme Corp\n2019 - present"

	segmenter := NewSectionSegmenter()
	sections := segmenter.Segment(text)

	require.Len(t, sections, 3, "应切出头部、概要、经历三个章节")

	// 第一个章节没有标题，承载标题之前的内容
	assert.Equal(t, "", sections[0].Title)
	assert.Contains(t, sections[0].Content, "John Smith")
	assert.Contains(t, sections[0].Content, "john@x.com")

	assert.Equal(t, "SUMMARY", sections[1].Title)
	assert.Equal(t, "Seasoned engineer.", sections[1].Content)

	assert.Equal(t, "EXPERIENCE", sections[2].Title)
	assert.Contains(t, sections[2].Content, "Software Engineer - Acme Corp")
}

// TestSegmentKeywordBodyLine 短正文行一旦包含词表词就会被当成标题
// "Experienced engineer."命中"experience"，因此SUMMARY成为空章节被丢弃
func TestSegmentKeywordBodyLine(t *testing.T) {
	text := "John Smith\nSUMMARY\nExperienced engineer.\nEXPERIENCE\nSoftware Engineer - Acme Corp"

	sections := NewSectionSegmenter().Segment(text)

	require.Len(t, sections, 2)
	assert.Equal(t, "", sections[0].Title)
	assert.Equal(t, "John Smith", sections[0].Content)
	assert.Equal(t, "EXPERIENCE", sections[1].Title)
	assert.Equal(t, "Software Engineer - Acme Corp", sections[1].Content)
}

// TestSegmentNoHeaders 没有任何标题时返回单个空标题章节
func TestSegmentNoHeaders(t *testing.T) {
	text := "line one\nline two\nline three"

	sections := NewSectionSegmenter().Segment(text)

	require.Len(t, sections, 1)
	assert.Equal(t, "", sections[0].Title)
	assert.Equal(t, "line one\nline two\nline three", sections[0].Content)
}

// TestSegmentDropsBlankLines 空行被丢弃而不是作为章节边界
func TestSegmentDropsBlankLines(t *testing.T) {
	text := "EDUCATION\nBachelor of Science\n\n\nState University"

	sections := NewSectionSegmenter().Segment(text)

	require.Len(t, sections, 1)
	assert.Equal(t, "EDUCATION", sections[0].Title)
	assert.Equal(t, "Bachelor of Science\nState University", sections[0].Content)
}

// TestSegmentReconstruction 所有章节内容拼接后应还原全部非空正文行
func TestSegmentReconstruction(t *testing.T) {
	text := "Jane Doe\njane@y.com\n\nSKILLS\npython, docker\n\nEXPERIENCE\nEngineer | Beta Inc\n2020 - 2022"

	sections := NewSectionSegmenter().Segment(text)

	var got []string
	for _, s := range sections {
		if s.Content == "" {
			continue
		}
		got = append(got, strings.Split(s.Content, "\n")...)
	}

	var want []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || IsSectionHeader(line) {
			continue
		}
		want = append(want, line)
	}
	assert.Equal(t, want, got, "去掉标题和空行后的正文行应按原顺序完整保留")
}

// TestIsSectionHeader 标题判定的长度与词表条件
func TestIsSectionHeader(t *testing.T) {
	assert.True(t, IsSectionHeader("EXPERIENCE"))
	assert.True(t, IsSectionHeader("Technical Skills"))
	assert.True(t, IsSectionHeader("education"))
	// 超过50字符的行即使包含关键词也不算标题
	long := "my experience " + strings.Repeat("x", 50)
	assert.False(t, IsSectionHeader(long))
	assert.False(t, IsSectionHeader("John Smith"))
}
