package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/types"
)

// TestExtractEducationBasic 学位、院校、年份、GPA的常规抽取
func TestExtractEducationBasic(t *testing.T) {
	sections := []types.Section{
		{Title: "EDUCATION", Content: "Bachelor of Science in CS\nState University\n2015\nGPA: 3.8"},
	}

	entries := NewEducationExtractor().Extract(sections)

	require.Len(t, entries, 1)
	assert.Equal(t, "Bachelor of Science in CS", entries[0].Degree)
	assert.Equal(t, "State University", entries[0].Institution)
	assert.Equal(t, "2015", entries[0].Year)
	assert.Equal(t, "3.8", entries[0].GPA)
}

// TestExtractEducationLastWins 学位行和院校行都是后出现者覆盖
func TestExtractEducationLastWins(t *testing.T) {
	sections := []types.Section{
		{Title: "Education", Content: "Bachelor of Arts\nCity College\nMaster of Science\nTech University\n2012\n2016"},
	}

	entries := NewEducationExtractor().Extract(sections)

	require.Len(t, entries, 1)
	assert.Equal(t, "Master of Science", entries[0].Degree)
	assert.Equal(t, "Tech University", entries[0].Institution)
	assert.Equal(t, "2016", entries[0].Year, "年份取最后出现的19xx/20xx")
}

// TestExtractEducationShortBlockDiscarded 过短的块被丢弃
func TestExtractEducationShortBlockDiscarded(t *testing.T) {
	sections := []types.Section{
		{Title: "EDUCATION", Content: "BSc 2015"},
	}
	entries := NewEducationExtractor().Extract(sections)
	assert.Empty(t, entries, "不足10字符的块不产出条目")
}

// TestExtractEducationSectionFilter 标题未命中教育词表的章节被跳过
func TestExtractEducationSectionFilter(t *testing.T) {
	sections := []types.Section{
		{Title: "EXPERIENCE", Content: "Bachelor of Science\nState University\n2015"},
	}
	entries := NewEducationExtractor().Extract(sections)
	assert.Empty(t, entries)
}

// TestParseEducationBlockDegreePriority 同一行同时含学位词和院校词时按学位处理
func TestParseEducationBlockDegreePriority(t *testing.T) {
	entry, ok := parseEducationBlock("Master of Engineering, Tech University\nGraduated 2018")
	require.True(t, ok)
	assert.Equal(t, "Master of Engineering, Tech University", entry.Degree)
	assert.Empty(t, entry.Institution)
	assert.Equal(t, "2018", entry.Year)
}
