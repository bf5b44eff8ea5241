package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx 在内存中构造一个最小化的DOCX压缩包
func buildDocx(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const docxBodyWithTable = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>John Smith</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Python</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Expert</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Software Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`

// TestDOCXExtractOrder 正文段落全部在前，表格行统一靠后
func TestDOCXExtractOrder(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/document.xml": docxBodyWithTable})

	text := NewDOCXTextExtractor().Extract(context.Background(), data)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "John Smith", lines[0])
	assert.Equal(t, "Software Engineer", lines[1], "表格之后的段落仍排在所有表格行之前")
	assert.Equal(t, "Python | Expert", lines[2], "表格单元格以\" | \"连接")
}

// TestDOCXExtractHeadersFooters 页眉在页脚之前，且都在正文之后
func TestDOCXExtractHeadersFooters(t *testing.T) {
	para := func(text string) string {
		return `<w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`
	}
	data := buildDocx(t, map[string]string{
		"word/document.xml": para("body text"),
		"word/footer1.xml":  para("footer text"),
		"word/header1.xml":  para("header text"),
	})

	text := NewDOCXTextExtractor().Extract(context.Background(), data)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "body text", lines[0])
	assert.Equal(t, "header text", lines[1])
	assert.Equal(t, "footer text", lines[2])
}

// TestDOCXExtractMalformed 畸形输入降级为空字符串而不报错
func TestDOCXExtractMalformed(t *testing.T) {
	extractor := NewDOCXTextExtractor()

	assert.Equal(t, "", extractor.Extract(context.Background(), []byte("not a zip at all")))
	assert.Equal(t, "", extractor.Extract(context.Background(), nil))

	// 是zip但缺少document.xml
	data := buildDocx(t, map[string]string{"other.txt": "hello"})
	assert.Equal(t, "", extractor.Extract(context.Background(), data))

	// document.xml是截断的XML，已解析部分仍然保留
	truncated := `<w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>partial</w:t></w:r></w:p><w:p><w:r><w:t>cut`
	data = buildDocx(t, map[string]string{"word/document.xml": truncated})
	text := extractor.Extract(context.Background(), data)
	assert.Contains(t, text, "partial")
}
