package parser

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/logger"
)

// PDFTextExtractor 基于ledongthuc/pdf的PDF文本提取器
// 主策略逐页按行提取（保留版面行序），结果过短时尝试备用的整体流式提取
// 两种策略的输出不做合并，只取其一
type PDFTextExtractor struct {
	retryThreshold int // 主策略结果低于该字符数时触发备用策略
	logger         zerolog.Logger
}

// PDFOption 定义PDF提取器的配置选项函数
type PDFOption func(*PDFTextExtractor)

// WithPDFRetryThreshold 配置触发备用策略的字符数阈值
func WithPDFRetryThreshold(threshold int) PDFOption {
	return func(e *PDFTextExtractor) {
		if threshold > 0 {
			e.retryThreshold = threshold
		}
	}
}

// WithPDFLogger 配置自定义日志记录器
func WithPDFLogger(l zerolog.Logger) PDFOption {
	return func(e *PDFTextExtractor) {
		e.logger = l
	}
}

var _ TextExtractor = (*PDFTextExtractor)(nil)

// NewPDFTextExtractor 创建一个新的PDF文本提取器
func NewPDFTextExtractor(options ...PDFOption) *PDFTextExtractor {
	extractor := &PDFTextExtractor{
		retryThreshold: constants.PDFRetryThreshold,
		logger:         logger.Logger.With().Str("component", "pdf_extractor").Logger(),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// Extract 从PDF二进制中提取文本，永不返回错误
// 解析失败时降级为空字符串，是否"文本不足"由流水线判断
func (e *PDFTextExtractor) Extract(ctx context.Context, content []byte) string {
	primary := e.extractByRows(content)
	if len(primary) >= e.retryThreshold {
		return primary
	}

	e.logger.Debug().
		Int("primary_len", len(primary)).
		Int("threshold", e.retryThreshold).
		Msg("主策略结果过短，尝试备用流式提取")

	secondary := e.extractPlainText(content)
	// 备用策略只有在产出更多文本时才被采纳
	if len(secondary) > len(primary) {
		return secondary
	}
	return primary
}

// extractByRows 主策略：逐页按行提取，页与页之间以换行符连接
func (e *PDFTextExtractor) extractByRows(content []byte) (result string) {
	// 底层库在畸形文件上可能panic，统一降级为已累积的文本
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Interface("panic", r).Msg("按行提取PDF时发生panic，返回已提取部分")
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		e.logger.Debug().Err(err).Msg("打开PDF失败")
		return ""
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// 单页失败不中断整体提取
			e.logger.Debug().Err(err).Int("page", i).Msg("按行提取单页失败，跳过")
			continue
		}
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			text := strings.TrimSpace(line.String())
			if text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		}
		result = sb.String()
	}
	return sb.String()
}

// extractPlainText 备用策略：整体流式提取
func (e *PDFTextExtractor) extractPlainText(content []byte) (result string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Interface("panic", r).Msg("流式提取PDF时发生panic")
			result = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}
	rs, err := reader.GetPlainText()
	if err != nil {
		e.logger.Debug().Err(err).Msg("流式提取失败")
		return ""
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return ""
	}
	return normalizeText(buf.String())
}

// normalizeText 折叠多余空白，保留换行结构
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	var out []string
	for _, line := range lines {
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
