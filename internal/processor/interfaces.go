package processor

import (
	"context"

	"resume-parser-go/internal/types"
)

// 流水线各阶段组件的接口定义
// 具体实现位于parser包，接口留在消费方便于替换和测试

// TextSource 文档文本提取能力
type TextSource interface {
	// ExtractText 从文档二进制中提取纯文本，永不返回错误
	ExtractText(ctx context.Context, content []byte, format types.DocumentFormat) string
}

// Segmenter 章节分割能力
type Segmenter interface {
	Segment(text string) []types.Section
}

// PersonalInfoSource 个人信息抽取能力
type PersonalInfoSource interface {
	Extract(text string) types.PersonalInfo
}

// SummarySource 概要抽取能力
type SummarySource interface {
	Extract(text string) string
}

// ExperienceSource 工作经历抽取能力
type ExperienceSource interface {
	Extract(sections []types.Section) []types.ExperienceEntry
}

// EducationSource 教育经历抽取能力
type EducationSource interface {
	Extract(sections []types.Section) []types.EducationEntry
}

// SkillsSource 技能抽取能力
type SkillsSource interface {
	Extract(text string, sections []types.Section) []types.Skill
}

// ScoreSource 评分能力
type ScoreSource interface {
	OverallScore(resume *types.ParsedResume) int
	ConfidenceScores(resume *types.ParsedResume) types.ConfidenceScores
}
