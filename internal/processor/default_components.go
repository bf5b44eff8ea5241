package processor

import (
	"resume-parser-go/internal/config"
	"resume-parser-go/internal/parser"
)

// DefaultComponents 按配置组装标准组件集
// 应用入口和消费者都从这里拿到同一套装配
func DefaultComponents(cfg *config.Config) []ComponentOpt {
	pdfExtractor := parser.NewPDFTextExtractor(
		parser.WithPDFRetryThreshold(cfg.Parser.PDFRetryThreshold),
	)
	docxExtractor := parser.NewDOCXTextExtractor()

	return []ComponentOpt{
		WithTextSource(parser.NewDocumentTextExtractor(pdfExtractor, docxExtractor)),
		WithSegmenter(parser.NewSectionSegmenter()),
		WithPersonalInfoSource(parser.NewPersonalInfoExtractor(parser.NewHeuristicEntityTagger())),
		WithSummarySource(parser.NewSummaryExtractor()),
		WithExperienceSource(parser.NewExperienceExtractor()),
		WithEducationSource(parser.NewEducationExtractor()),
		WithSkillsSource(parser.NewSkillsExtractor()),
		WithScorer(parser.NewScorer(parser.WithReferenceYear(cfg.Parser.ReferenceYear))),
	}
}

// DefaultSettings 按配置生成标准设置集
func DefaultSettings(cfg *config.Config) []SettingOpt {
	return []SettingOpt{
		WithMinTextLength(cfg.Parser.MinTextLength),
	}
}
