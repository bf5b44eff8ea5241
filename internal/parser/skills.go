package parser

import (
	"regexp"
	"strings"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// SkillsExtractor 技能抽取器
// 两路来源合并：关键词分类表扫全文在前，技能章节逐项切分在后
// 按名称去重，先扫到者保留其类别
type SkillsExtractor struct{}

// NewSkillsExtractor 创建技能抽取器
func NewSkillsExtractor() *SkillsExtractor {
	return &SkillsExtractor{}
}

// 列表符号统一替换为逗号后再切分
var bulletRe = regexp.MustCompile(`[•\-*]`)

// Extract 从全文和章节序列中抽取技能列表
func (s *SkillsExtractor) Extract(text string, sections []types.Section) []types.Skill {
	var skills []types.Skill
	textLower := strings.ToLower(text)

	// 来源一：固定分类表按顺序扫描全文
	for _, category := range constants.SkillCategories {
		label := categoryLabel(category.Name)
		for _, keyword := range category.Keywords {
			if strings.Contains(textLower, keyword) {
				skills = append(skills, types.Skill{Name: keyword, Category: label})
			}
		}
	}

	// 来源二：标题含"skill"的章节逐项切分
	for _, section := range sections {
		if !strings.Contains(strings.ToLower(section.Title), "skill") {
			continue
		}
		skills = append(skills, parseSkillsSection(section.Content)...)
	}

	// 按名称去重，首次出现者胜出
	seen := make(map[string]struct{}, len(skills))
	unique := make([]types.Skill, 0, len(skills))
	for _, skill := range skills {
		if _, ok := seen[skill.Name]; ok {
			continue
		}
		seen[skill.Name] = struct{}{}
		unique = append(unique, skill)
	}
	return unique
}

// parseSkillsSection 切分技能章节内容为独立技能项
func parseSkillsSection(content string) []types.Skill {
	normalized := bulletRe.ReplaceAllString(content, ",")
	var skills []types.Skill
	for _, token := range strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	}) {
		token = strings.TrimSpace(token)
		if token == "" || len(token) >= 50 {
			continue
		}
		// "skills:"之类的标签行残片不算技能
		if strings.HasPrefix(strings.ToLower(token), "skill") {
			continue
		}
		skills = append(skills, types.Skill{
			Name:     token,
			Category: constants.GeneralSkillCategory,
		})
	}
	return skills
}

// categoryLabel 把snake_case的类别名转为可读标签，如 web_development -> Web Development
func categoryLabel(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
