package parser

import (
	"regexp"
	"strings"

	"resume-parser-go/internal/types"
)

// PersonalInfoExtractor 个人信息抽取器
// 各字段独立抽取，找不到就留空，不做任何猜测
type PersonalInfoExtractor struct {
	tagger EntityTagger
}

// NewPersonalInfoExtractor 创建个人信息抽取器
func NewPersonalInfoExtractor(tagger EntityTagger) *PersonalInfoExtractor {
	return &PersonalInfoExtractor{tagger: tagger}
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// 电话模式按固定顺序尝试，第一个命中的模式胜出，不跨模式合并
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),                        // 3-3-4 美式
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.]?\d{4}`),                          // 带区号括号
		regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{3,4}[\s.-]?\d{3,4}[\s.-]?\d{3,4}`), // 宽松国际格式
	}

	linkedinRe = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)

	// 地点模式优先级高于实体识别结果
	locationRes = []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][a-z]+),\s*([A-Z]{2})\b`),   // City, ST
		regexp.MustCompile(`([A-Z][a-z]+),\s*([A-Z][a-z]+)`), // City, State
	}

	nameExcludeRe = regexp.MustCompile(`\d|@|\.com`)
)

// Extract 从原始文本中抽取个人信息
func (p *PersonalInfoExtractor) Extract(text string) types.PersonalInfo {
	info := types.PersonalInfo{}
	spans := p.tagger.Tag(text)

	if email := emailRe.FindString(text); email != "" {
		info.Email = email
	}

	for _, re := range phoneRes {
		if phone := re.FindString(text); phone != "" {
			info.Phone = phone
			break
		}
	}

	info.Name = extractName(text, spans)

	if m := linkedinRe.FindString(strings.ToLower(text)); m != "" {
		info.LinkedIn = m
	}

	info.Location = extractLocation(text, spans)

	return info
}

// extractName 优先取实体识别出的两词以上人名，否则在前5行中找形似姓名的行
func extractName(text string, spans []types.EntitySpan) string {
	for _, span := range spans {
		if span.Label == types.EntityPerson && len(strings.Fields(span.Text)) >= 2 {
			return strings.TrimSpace(span.Text)
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := len(strings.Fields(line))
		if words >= 2 && words <= 4 && len(line) < 50 && !nameExcludeRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// extractLocation 正则命中的"城市, 州"模式总是优先于实体识别结果
func extractLocation(text string, spans []types.EntitySpan) string {
	for _, re := range locationRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1] + ", " + m[2]
		}
	}
	for _, span := range spans {
		if span.Label == types.EntityLocation {
			return span.Text
		}
	}
	return ""
}
