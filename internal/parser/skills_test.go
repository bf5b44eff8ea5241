package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/types"
)

func findSkill(skills []types.Skill, name string) (types.Skill, bool) {
	for _, s := range skills {
		if s.Name == name {
			return s, true
		}
	}
	return types.Skill{}, false
}

// TestExtractSkillsFromTable 分类表命中全文关键词，类别为可读标签
func TestExtractSkillsFromTable(t *testing.T) {
	text := "Worked with python and docker, plus some react on the side."

	skills := NewSkillsExtractor().Extract(text, nil)

	py, ok := findSkill(skills, "python")
	require.True(t, ok)
	assert.Equal(t, "Programming", py.Category)

	dk, ok := findSkill(skills, "docker")
	require.True(t, ok)
	assert.Equal(t, "Cloud", dk.Category)

	re, ok := findSkill(skills, "react")
	require.True(t, ok)
	assert.Equal(t, "Web Development", re.Category)
}

// TestExtractSkillsFromSection 技能章节按逗号/换行/分号切分，类别为General
func TestExtractSkillsFromSection(t *testing.T) {
	sections := []types.Section{
		{Title: "SKILLS", Content: "Leadership; Public Speaking\n• Mentoring, Negotiation"},
	}

	skills := NewSkillsExtractor().Extract("", sections)

	for _, name := range []string{"Leadership", "Public Speaking", "Mentoring", "Negotiation"} {
		s, ok := findSkill(skills, name)
		require.True(t, ok, "应抽取到技能 %s", name)
		assert.Equal(t, "General", s.Category)
	}
}

// TestExtractSkillsDedupFirstWins 重名技能保留先扫到的类别
func TestExtractSkillsDedupFirstWins(t *testing.T) {
	sections := []types.Section{
		{Title: "Technical Skills", Content: "python, Leadership, Leadership"},
	}

	skills := NewSkillsExtractor().Extract("expert in python", sections)

	count := 0
	for _, s := range skills {
		if s.Name == "python" {
			count++
			// 分类表先扫描，类别来自表而不是章节
			assert.Equal(t, "Programming", s.Category)
		}
	}
	assert.Equal(t, 1, count, "python只应出现一次")

	leadCount := 0
	for _, s := range skills {
		if s.Name == "Leadership" {
			leadCount++
		}
	}
	assert.Equal(t, 1, leadCount)
}

// TestParseSkillsSectionFilters 过长项和"skill"开头的标签残片被过滤
func TestParseSkillsSectionFilters(t *testing.T) {
	long := "this single skill token is way too long to be a real individual skill name"
	skills := parseSkillsSection("Skills include\nGo Tooling," + long)

	_, ok := findSkill(skills, "Go Tooling")
	assert.True(t, ok)
	for _, s := range skills {
		assert.Less(t, len(s.Name), 50)
		assert.NotContains(t, s.Name, "Skills include")
	}
}
