package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPDFExtractMalformed 畸形输入永不报错，降级为空字符串
func TestPDFExtractMalformed(t *testing.T) {
	extractor := NewPDFTextExtractor()

	assert.Equal(t, "", extractor.Extract(context.Background(), nil))
	assert.Equal(t, "", extractor.Extract(context.Background(), []byte("definitely not a pdf")))
	// 有PDF头但内容损坏
	assert.Equal(t, "", extractor.Extract(context.Background(), []byte("%PDF-1.7 garbage")))
}

// TestNormalizeText 折叠空白、统一换行、保留行结构
func TestNormalizeText(t *testing.T) {
	in := "  hello   world \r\nsecond line\r\r\n\nlast  "
	out := normalizeText(in)
	assert.Equal(t, "hello world\nsecond line\n\n\nlast", out)
}

// TestDocumentTextExtractorDispatch 未知格式返回空字符串
func TestDocumentTextExtractorDispatch(t *testing.T) {
	d := NewDocumentTextExtractor(NewPDFTextExtractor(), NewDOCXTextExtractor())
	assert.Equal(t, "", d.ExtractText(context.Background(), []byte("x"), "TXT"))
}
