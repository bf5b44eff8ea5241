package parser

import (
	"context"

	"resume-parser-go/internal/types"
)

// TextExtractor 单一格式的文本提取器接口
// 约定：对畸形输入不返回错误，尽力返回能抢救出的文本，最差返回空字符串
type TextExtractor interface {
	Extract(ctx context.Context, content []byte) string
}

// DocumentTextExtractor 按文件格式分发到对应提取器
type DocumentTextExtractor struct {
	pdf  TextExtractor
	docx TextExtractor
}

// NewDocumentTextExtractor 创建格式分发器
func NewDocumentTextExtractor(pdf, docx TextExtractor) *DocumentTextExtractor {
	return &DocumentTextExtractor{pdf: pdf, docx: docx}
}

// ExtractText 从文档二进制中提取纯文本
// 未知格式返回空字符串，由上层按"文本不足"处理
func (d *DocumentTextExtractor) ExtractText(ctx context.Context, content []byte, format types.DocumentFormat) string {
	switch format {
	case types.FormatPDF:
		return d.pdf.Extract(ctx, content)
	case types.FormatDOCX:
		return d.docx.Extract(ctx, content)
	default:
		return ""
	}
}
