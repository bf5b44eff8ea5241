package parser

import (
	"regexp"
	"strings"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// EducationExtractor 教育经历抽取器
type EducationExtractor struct{}

// NewEducationExtractor 创建教育经历抽取器
func NewEducationExtractor() *EducationExtractor {
	return &EducationExtractor{}
}

var (
	yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	gpaRe  = regexp.MustCompile(`gpa:?\s*(\d+\.?\d*)`)
)

// Extract 从章节序列中抽取全部教育经历条目
func (e *EducationExtractor) Extract(sections []types.Section) []types.EducationEntry {
	var entries []types.EducationEntry
	for _, section := range sections {
		titleLower := strings.ToLower(section.Title)
		if !containsAny(titleLower, constants.EducationKeywords) {
			continue
		}
		// 以空行为界切块；分割器已去除空行时整个章节即为一块
		for _, block := range strings.Split(section.Content, "\n\n") {
			if len(strings.TrimSpace(block)) < 10 {
				continue
			}
			if entry, ok := parseEducationBlock(block); ok {
				entries = append(entries, entry)
			}
		}
	}
	return entries
}

// parseEducationBlock 解析单个教育块
// 学位行与院校行都是后出现者覆盖先出现者
func parseEducationBlock(block string) (types.EducationEntry, bool) {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return types.EducationEntry{}, false
	}

	entry := types.EducationEntry{}

	for _, line := range lines {
		lineLower := strings.ToLower(line)
		if containsAny(lineLower, constants.DegreeKeywords) {
			entry.Degree = line
		} else if containsAny(lineLower, constants.InstitutionKeywords) {
			entry.Institution = line
		}
	}

	// 年份取整块中最后出现的19xx/20xx
	if years := yearRe.FindAllString(block, -1); len(years) > 0 {
		entry.Year = years[len(years)-1]
	}

	// GPA取第一个命中的行
	for _, line := range lines {
		if m := gpaRe.FindStringSubmatch(strings.ToLower(line)); m != nil {
			entry.GPA = m[1]
			break
		}
	}

	empty := entry.Degree == "" && entry.Institution == "" && entry.Year == "" && entry.GPA == ""
	return entry, !empty
}
