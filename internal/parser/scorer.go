package parser

import (
	"regexp"
	"strconv"
	"strings"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// Scorer 评分引擎
// 纯函数：同一份抽取结果永远得到同一组分数，无I/O无随机性
type Scorer struct {
	referenceYear int // "present"/"current"折算到的年份
}

// ScorerOption 定义评分引擎的配置选项函数
type ScorerOption func(*Scorer)

// WithReferenceYear 配置在职时间段的折算年份
func WithReferenceYear(year int) ScorerOption {
	return func(s *Scorer) {
		if year > 0 {
			s.referenceYear = year
		}
	}
}

// NewScorer 创建评分引擎
func NewScorer(options ...ScorerOption) *Scorer {
	scorer := &Scorer{referenceYear: constants.ReferenceYear}
	for _, option := range options {
		option(scorer)
	}
	return scorer
}

// 年份区间：起始年 - 结束年|present|current
var yearRangeRe = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4}|present|current)`)

// OverallScore 计算0-100的综合评分
// 工作经历、教育、技能和联系方式完整度各自封顶后求和再整体截断
func (s *Scorer) OverallScore(resume *types.ParsedResume) int {
	score := 0

	// 工作经历 (0-40)：每年4分，10年封顶
	totalYears := 0
	for _, exp := range resume.Experience {
		totalYears += s.yearsFromDuration(exp.Duration)
	}
	score += minInt(totalYears*4, 40)

	// 教育 (0-25)：每个学位8分
	score += minInt(len(resume.Education)*8, 25)

	// 技能 (0-25)：每项2分
	score += minInt(len(resume.Skills)*2, 25)

	// 联系方式完整度 (0-10)
	info := resume.PersonalInfo
	if info.Email != "" {
		score += 3
	}
	if info.Phone != "" {
		score += 3
	}
	if info.Name != "" {
		score += 2
	}
	if info.Location != "" {
		score += 2
	}

	return minInt(score, 100)
}

// ConfidenceScores 计算各维度的抽取置信度
func (s *Scorer) ConfidenceScores(resume *types.ParsedResume) types.ConfidenceScores {
	scores := types.ConfidenceScores{}

	info := resume.PersonalInfo
	if strings.Contains(info.Email, "@") {
		scores.Personal += 30
	}
	if info.Phone != "" {
		scores.Personal += 25
	}
	if len(strings.Fields(info.Name)) >= 2 {
		scores.Personal += 25
	}
	if info.Location != "" {
		scores.Personal += 20
	}

	scores.Experience = minInt(len(resume.Experience)*20, 100)
	scores.Education = minInt(len(resume.Education)*30, 100)
	scores.Skills = minInt(len(resume.Skills)*5, 100)
	return scores
}

// yearsFromDuration 从任职时间文本中累加年份区间的跨度
// 负区间按0计，识别不出任何区间返回0
func (s *Scorer) yearsFromDuration(duration string) int {
	if duration == "" {
		return 0
	}
	total := 0
	for _, m := range yearRangeRe.FindAllStringSubmatch(strings.ToLower(duration), -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := s.referenceYear
		if m[2] != "present" && m[2] != "current" {
			end, err = strconv.Atoi(m[2])
			if err != nil {
				continue
			}
		}
		if end > start {
			total += end - start
		}
	}
	return total
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
