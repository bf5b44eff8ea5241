package parser

import (
	"regexp"
	"strings"
	"unicode"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// ExperienceExtractor 工作经历抽取器
// 消费分割后的章节，按大写标题行启发式切分职位块
type ExperienceExtractor struct{}

// NewExperienceExtractor 创建工作经历抽取器
func NewExperienceExtractor() *ExperienceExtractor {
	return &ExperienceExtractor{}
}

// 任职时间特征：4位年份、月/年、present或current
var durationRe = regexp.MustCompile(`(?i)\b\d{4}\b|\b\d{1,2}/\d{4}\b|\b(?:present|current)\b`)

// Extract 从章节序列中抽取全部工作经历条目
func (e *ExperienceExtractor) Extract(sections []types.Section) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	for _, section := range sections {
		titleLower := strings.ToLower(section.Title)
		if !containsAny(titleLower, constants.ExperienceSectionKeywords) {
			continue
		}
		for _, block := range splitJobBlocks(section.Content) {
			if entry, ok := parseJobBlock(block); ok {
				entries = append(entries, entry)
			}
		}
	}
	return entries
}

// splitJobBlocks 在形似职位标题的行前切分职位块
// 块长不足20字符的噪声块直接丢弃
func splitJobBlocks(content string) []string {
	var blocks []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		block := strings.Join(current, "\n")
		if len(strings.TrimSpace(block)) >= 20 {
			blocks = append(blocks, block)
		}
		current = current[:0]
	}

	for i, line := range strings.Split(content, "\n") {
		if i > 0 && isJobHeading(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// isJobHeading 判断一行是否形似职位块的标题
// 条件：首字符大写，且在出现任何小写字母之前还有第二个大写字母
func isJobHeading(line string) bool {
	runes := []rune(line)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// parseJobBlock 解析单个职位块
func parseJobBlock(block string) (types.ExperienceEntry, bool) {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return types.ExperienceEntry{}, false
	}

	entry := types.ExperienceEntry{}

	// 首行按 "|"、"-"、" at " 的顺序尝试切分职位与公司
	entry.Title, entry.Company = splitTitleCompany(lines[0])

	// 第2、3行中首个带日期特征的行作为任职时间
	end := 3
	if end > len(lines) {
		end = len(lines)
	}
	for _, line := range lines[1:end] {
		if durationRe.MatchString(line) {
			entry.Duration = line
			break
		}
	}

	// 其余非日期行按原顺序拼为描述
	var descLines []string
	for _, line := range lines[1:] {
		if !durationRe.MatchString(line) {
			descLines = append(descLines, line)
		}
	}
	entry.Description = strings.Join(descLines, "\n")

	empty := entry.Title == "" && entry.Company == "" && entry.Duration == "" && entry.Description == ""
	return entry, !empty
}

// splitTitleCompany 第一个能切出两段的分隔符胜出
func splitTitleCompany(line string) (title, company string) {
	for _, sep := range []string{"|", "-", " at "} {
		if strings.Contains(line, sep) {
			parts := strings.SplitN(line, sep, 2)
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
	}
	return "", ""
}
