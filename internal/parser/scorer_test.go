package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-parser-go/internal/types"
)

// TestOverallScoreComposition 各分量独立封顶后求和
func TestOverallScoreComposition(t *testing.T) {
	resume := &types.ParsedResume{
		PersonalInfo: types.PersonalInfo{
			Name:     "John Smith",
			Email:    "john@x.com",
			Phone:    "555-123-4567",
			Location: "Austin, TX",
		},
		Experience: []types.ExperienceEntry{
			{Duration: "2019 - 2022"}, // 3年 → 12分
		},
		Education: []types.EducationEntry{{Degree: "BSc"}}, // 8分
		Skills:    []types.Skill{{Name: "python"}, {Name: "go"}},
	}

	score := NewScorer().OverallScore(resume)
	// 12 + 8 + 4 + 10(联系方式满分)
	assert.Equal(t, 34, score)
}

// TestOverallScoreCaps 每个分量都有独立上限
func TestOverallScoreCaps(t *testing.T) {
	resume := &types.ParsedResume{
		Experience: []types.ExperienceEntry{
			{Duration: "1990 - 2020"}, // 30年，经历分封顶40
		},
	}
	for i := 0; i < 10; i++ {
		resume.Education = append(resume.Education, types.EducationEntry{Degree: "x"}) // 80分封顶25
	}
	for i := 0; i < 30; i++ {
		resume.Skills = append(resume.Skills, types.Skill{Name: string(rune('a' + i))}) // 60分封顶25
	}

	score := NewScorer().OverallScore(resume)
	// 40 + 25 + 25 + 0
	assert.Equal(t, 90, score)
}

// TestYearsFromDurationPresent present/current折算到参考年份
func TestYearsFromDurationPresent(t *testing.T) {
	scorer := NewScorer()
	assert.Equal(t, 5, scorer.yearsFromDuration("2019 - Present"))
	assert.Equal(t, 4, scorer.yearsFromDuration("2020 - CURRENT"))

	// 可配置参考年份
	scorer = NewScorer(WithReferenceYear(2030))
	assert.Equal(t, 11, scorer.yearsFromDuration("2019 - present"))
}

// TestYearsFromDurationEdgeCases 负区间按0计，无法识别返回0
func TestYearsFromDurationEdgeCases(t *testing.T) {
	scorer := NewScorer()
	assert.Equal(t, 0, scorer.yearsFromDuration("2022 - 2019"), "负区间不应为负贡献")
	assert.Equal(t, 0, scorer.yearsFromDuration(""))
	assert.Equal(t, 0, scorer.yearsFromDuration("since a while ago"))
	// 多个区间累加
	assert.Equal(t, 5, scorer.yearsFromDuration("2010 - 2013, 2015 - 2017"))
}

// TestScoringMonotonic 增加一条正年限的经历不会降低总分
func TestScoringMonotonic(t *testing.T) {
	scorer := NewScorer()
	resume := &types.ParsedResume{
		Experience: []types.ExperienceEntry{{Duration: "2018 - 2020"}},
	}
	before := scorer.OverallScore(resume)

	resume.Experience = append(resume.Experience, types.ExperienceEntry{Duration: "2015 - 2017"})
	after := scorer.OverallScore(resume)
	assert.GreaterOrEqual(t, after, before)
}

// TestConfidenceScores 各维度置信度独立计算
func TestConfidenceScores(t *testing.T) {
	resume := &types.ParsedResume{
		PersonalInfo: types.PersonalInfo{
			Name:  "John Smith",
			Email: "john@x.com",
			Phone: "555-123-4567",
		},
		Experience: []types.ExperienceEntry{{}, {}, {}},
		Education:  []types.EducationEntry{{}, {}},
		Skills:     make([]types.Skill, 25),
	}

	scores := NewScorer().ConfidenceScores(resume)
	assert.Equal(t, 80, scores.Personal, "30邮箱+25电话+25双词姓名，无地点")
	assert.Equal(t, 60, scores.Experience)
	assert.Equal(t, 60, scores.Education)
	assert.Equal(t, 100, scores.Skills, "25项×5封顶100")
}

// TestConfidenceSingleWordName 单词姓名不计入个人信息置信度
func TestConfidenceSingleWordName(t *testing.T) {
	resume := &types.ParsedResume{
		PersonalInfo: types.PersonalInfo{Name: "Cher", Location: "Austin, TX"},
	}
	scores := NewScorer().ConfidenceScores(resume)
	assert.Equal(t, 20, scores.Personal)
}
