package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/types"
)

// PipelineState 流水线状态
type PipelineState string

const (
	StateExtracting PipelineState = "Extracting" // 二进制到文本
	StateValidating PipelineState = "Validating" // 文本长度校验
	StateProcessing PipelineState = "Processing" // 章节分割与字段抽取
	StateScoring    PipelineState = "Scoring"    // 评分与置信度
	StateDone       PipelineState = "Done"       // 产出完整结果
	StateFailed     PipelineState = "Failed"     // 终态失败，无部分结果
)

// Components 流水线组件集合
type Components struct {
	TextSource   TextSource         // 文档文本提取
	Segmenter    Segmenter          // 章节分割
	PersonalInfo PersonalInfoSource // 个人信息抽取
	Summary      SummarySource      // 概要抽取
	Experience   ExperienceSource   // 工作经历抽取
	Education    EducationSource    // 教育经历抽取
	Skills       SkillsSource       // 技能抽取
	Scorer       ScoreSource        // 评分引擎
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	MinTextLength int            // 文本有效性下限（字符数）
	Debug         bool           // 是否开启调试模式
	Logger        zerolog.Logger // 日志记录器
}

// ResumePipeline 解析流水线协调器
// 调用之间不保留任何状态，可被多个goroutine并发使用
type ResumePipeline struct {
	components Components
	settings   Settings
}

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// ----- 组件选项 -----

// WithTextSource 设置文档文本提取组件
func WithTextSource(source TextSource) ComponentOpt {
	return func(c *Components) {
		c.TextSource = source
	}
}

// WithSegmenter 设置章节分割组件
func WithSegmenter(segmenter Segmenter) ComponentOpt {
	return func(c *Components) {
		c.Segmenter = segmenter
	}
}

// WithPersonalInfoSource 设置个人信息抽取组件
func WithPersonalInfoSource(source PersonalInfoSource) ComponentOpt {
	return func(c *Components) {
		c.PersonalInfo = source
	}
}

// WithSummarySource 设置概要抽取组件
func WithSummarySource(source SummarySource) ComponentOpt {
	return func(c *Components) {
		c.Summary = source
	}
}

// WithExperienceSource 设置工作经历抽取组件
func WithExperienceSource(source ExperienceSource) ComponentOpt {
	return func(c *Components) {
		c.Experience = source
	}
}

// WithEducationSource 设置教育经历抽取组件
func WithEducationSource(source EducationSource) ComponentOpt {
	return func(c *Components) {
		c.Education = source
	}
}

// WithSkillsSource 设置技能抽取组件
func WithSkillsSource(source SkillsSource) ComponentOpt {
	return func(c *Components) {
		c.Skills = source
	}
}

// WithScorer 设置评分引擎组件
func WithScorer(scorer ScoreSource) ComponentOpt {
	return func(c *Components) {
		c.Scorer = scorer
	}
}

// ----- 设置选项 -----

// WithMinTextLength 设置文本有效性下限
func WithMinTextLength(minLen int) SettingOpt {
	return func(s *Settings) {
		if minLen > 0 {
			s.MinTextLength = minLen
		}
	}
}

// WithDebug 设置调试模式
func WithDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithPipelineLogger 设置日志记录器
func WithPipelineLogger(l zerolog.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = l
	}
}

// NewResumePipeline 组装解析流水线
func NewResumePipeline(compOpts []ComponentOpt, setOpts []SettingOpt) *ResumePipeline {
	components := Components{}
	for _, opt := range compOpts {
		opt(&components)
	}

	settings := Settings{
		MinTextLength: constants.MinValidTextLength,
		Logger:        logger.Logger.With().Str("component", "pipeline").Logger(),
	}
	for _, opt := range setOpts {
		opt(&settings)
	}

	return &ResumePipeline{
		components: components,
		settings:   settings,
	}
}

// FormatFromFilename 根据扩展名推断文档格式
// pdf和docx之外的扩展名在进入流水线之前就被拒绝
func FormatFromFilename(filename string) (types.DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return types.FormatPDF, nil
	case ".docx":
		return types.FormatDOCX, nil
	default:
		return "", NewUnsupportedFormatError(filename, "仅支持.pdf和.docx")
	}
}

// Parse 驱动一次完整的解析：提取、校验、抽取、评分
// 要么返回完整的ParsedResume，要么返回错误，绝不产出部分结果
// 单个文档的失败是终态，不影响批次中的后续文档
func (p *ResumePipeline) Parse(ctx context.Context, content []byte, filename string) (result *types.ParsedResume, err error) {
	state := StateExtracting

	// 任何阶段的panic都在协调器边界收口为终态失败
	defer func() {
		if r := recover(); r != nil {
			p.settings.Logger.Error().
				Interface("panic", r).
				Str("filename", filename).
				Str("state", string(state)).
				Msg("解析流水线发生panic，收口为失败终态")
			result = nil
			err = NewInternalFaultError(filename, state, fmt.Sprintf("panic: %v", r))
		}
	}()

	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	p.logState(filename, state)
	text := p.components.TextSource.ExtractText(ctx, content, format)

	state = StateValidating
	p.logState(filename, state)
	// 长度下限按去除首尾空白后的有效字符数判断，纯空白填充不算内容
	if trimmed := len(strings.TrimSpace(text)); trimmed < p.settings.MinTextLength {
		state = StateFailed
		return nil, NewInsufficientTextError(filename, trimmed, p.settings.MinTextLength)
	}

	state = StateProcessing
	p.logState(filename, state)
	sections := p.components.Segmenter.Segment(text)

	resume := &types.ParsedResume{
		PersonalInfo: p.components.PersonalInfo.Extract(text),
		Summary:      p.components.Summary.Extract(text),
		Experience:   p.components.Experience.Extract(sections),
		Education:    p.components.Education.Extract(sections),
		Skills:       p.components.Skills.Extract(text, sections),
		RawText:      text,
		FileInfo: types.FileInfo{
			Filename:   filename,
			FileSize:   len(content),
			TextLength: len(text),
		},
	}

	state = StateScoring
	p.logState(filename, state)
	resume.OverallScore = p.components.Scorer.OverallScore(resume)
	resume.ConfidenceScores = p.components.Scorer.ConfidenceScores(resume)

	state = StateDone
	p.settings.Logger.Info().
		Str("filename", filename).
		Int("text_length", len(text)).
		Int("overall_score", resume.OverallScore).
		Int("experience_entries", len(resume.Experience)).
		Int("education_entries", len(resume.Education)).
		Int("skills", len(resume.Skills)).
		Msg("简历解析完成")

	return resume, nil
}

func (p *ResumePipeline) logState(filename string, state PipelineState) {
	if p.settings.Debug {
		p.settings.Logger.Debug().
			Str("filename", filename).
			Str("state", string(state)).
			Msg("流水线状态切换")
	}
}
