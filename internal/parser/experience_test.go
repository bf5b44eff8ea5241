package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/types"
)

// TestExtractExperienceBasic 经历章节中的单个职位块
func TestExtractExperienceBasic(t *testing.T) {
	sections := []types.Section{
		{Title: "EXPERIENCE", Content: "Software Engineer - Acme Corp\n2019 - present\nBuilt things."},
	}

	entries := NewExperienceExtractor().Extract(sections)

	require.Len(t, entries, 1)
	assert.Equal(t, "Software Engineer", entries[0].Title)
	assert.Equal(t, "Acme Corp", entries[0].Company)
	assert.Equal(t, "2019 - present", entries[0].Duration)
	assert.Equal(t, "Built things.", entries[0].Description)
}

// TestExtractExperienceIgnoresOtherSections 只处理标题命中经历词表的章节
func TestExtractExperienceIgnoresOtherSections(t *testing.T) {
	sections := []types.Section{
		{Title: "EDUCATION", Content: "Software Engineer - Acme Corp\n2019 - 2021\nIrrelevant here."},
		{Title: "", Content: "Engineer - Beta Inc\n2018 - 2019\nHeaderless too."},
	}

	entries := NewExperienceExtractor().Extract(sections)
	assert.Empty(t, entries, "空标题和非经历章节都不应产出经历条目")
}

// TestSplitTitleCompanySeparatorOrder 分隔符按 |、-、at 的顺序尝试
func TestSplitTitleCompanySeparatorOrder(t *testing.T) {
	title, company := splitTitleCompany("Engineer | Acme - West")
	assert.Equal(t, "Engineer", title)
	assert.Equal(t, "Acme - West", company, "管道符在连字符之前尝试")

	title, company = splitTitleCompany("Engineer - Acme")
	assert.Equal(t, "Engineer", title)
	assert.Equal(t, "Acme", company)

	title, company = splitTitleCompany("Engineer at Acme")
	assert.Equal(t, "Engineer", title)
	assert.Equal(t, "Acme", company)

	title, company = splitTitleCompany("Plain Headline")
	assert.Empty(t, title)
	assert.Empty(t, company)
}

// TestSplitJobBlocks 大写标题行开启新块，过短的块被丢弃
func TestSplitJobBlocks(t *testing.T) {
	content := "SENIOR ENGINEER | Acme Corp\n2019 - 2022\nLed the platform team.\nDB ADMIN | Beta Inc\n2015 - 2019\nManaged databases."

	blocks := splitJobBlocks(content)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "Acme Corp")
	assert.Contains(t, blocks[1], "Beta Inc")

	// 不足20字符的噪声块被丢弃
	blocks = splitJobBlocks("AB CD\nxx")
	assert.Empty(t, blocks)
}

// TestIsJobHeading 标题行判定：首字母大写且小写字母之前再有大写
func TestIsJobHeading(t *testing.T) {
	assert.True(t, isJobHeading("SENIOR ENGINEER"))
	assert.True(t, isJobHeading("IBM Research"))
	assert.False(t, isJobHeading("Software Engineer"), "第二个字符即小写则不算")
	assert.False(t, isJobHeading("built the platform"))
	assert.False(t, isJobHeading(""))
}

// TestParseJobBlockDuration 第2、3行之外的日期行不作为任职时间
func TestParseJobBlockDuration(t *testing.T) {
	entry, ok := parseJobBlock("Engineer - Acme\nShipped the v2 launch plan.\nOwned hiring pipeline.\n2019 - 2021")
	require.True(t, ok)
	assert.Empty(t, entry.Duration, "日期出现在第4行时不计入任职时间")
	// 但日期行仍会从描述中剔除
	assert.NotContains(t, entry.Description, "2019")
}
