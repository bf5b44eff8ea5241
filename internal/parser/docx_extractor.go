package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"resume-parser-go/internal/logger"
)

// DOCXTextExtractor 基于zip+xml流式解析的DOCX文本提取器
// 输出顺序固定：正文段落、表格行（单元格以" | "连接）、页眉段落、页脚段落
// 表格无论出现在文档何处都排在全部正文段落之后
type DOCXTextExtractor struct {
	logger zerolog.Logger
}

// DOCXOption 定义DOCX提取器的配置选项函数
type DOCXOption func(*DOCXTextExtractor)

// WithDOCXLogger 配置自定义日志记录器
func WithDOCXLogger(l zerolog.Logger) DOCXOption {
	return func(e *DOCXTextExtractor) {
		e.logger = l
	}
}

var _ TextExtractor = (*DOCXTextExtractor)(nil)

// NewDOCXTextExtractor 创建一个新的DOCX文本提取器
func NewDOCXTextExtractor(options ...DOCXOption) *DOCXTextExtractor {
	extractor := &DOCXTextExtractor{
		logger: logger.Logger.With().Str("component", "docx_extractor").Logger(),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// Extract 从DOCX二进制中提取文本，永不返回错误
func (e *DOCXTextExtractor) Extract(ctx context.Context, content []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		e.logger.Debug().Err(err).Msg("打开DOCX压缩包失败")
		return ""
	}

	var sb strings.Builder
	appendLines := func(lines []string) {
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			sb.WriteString(strings.TrimSpace(line))
			sb.WriteString("\n")
		}
	}

	// 正文：段落与表格分开收集，段落在前
	if data := readZipEntry(zr, "word/document.xml"); data != nil {
		paragraphs, tableRows := e.parseBody(data)
		appendLines(paragraphs)
		appendLines(tableRows)
	}

	// 页眉、页脚按文件名排序，保证输出可复现
	for _, prefix := range []string{"word/header", "word/footer"} {
		for _, name := range matchZipEntries(zr, prefix) {
			if data := readZipEntry(zr, name); data != nil {
				paragraphs, _ := e.parseBody(data)
				appendLines(paragraphs)
			}
		}
	}

	return strings.TrimSpace(sb.String())
}

// parseBody 对WordprocessingML做一次token遍历
// 返回表格外的段落文本和表格行文本（行内单元格以" | "连接）
func (e *DOCXTextExtractor) parseBody(data []byte) (paragraphs []string, tableRows []string) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var (
		tableDepth int
		inPara     bool
		paraBuf    strings.Builder
		inCell     bool
		cellBuf    strings.Builder
		rowCells   []string
		inText     bool // 仅w:t内的字符数据才是正文
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 截断的XML按已解析部分处理
			e.logger.Debug().Err(err).Msg("解析WordprocessingML中断")
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					rowCells = rowCells[:0]
				}
			case "tc":
				if tableDepth > 0 {
					inCell = true
					cellBuf.Reset()
				}
			case "p":
				if tableDepth == 0 {
					inPara = true
					paraBuf.Reset()
				} else if inCell && cellBuf.Len() > 0 {
					// 单元格内段落之间以空格分隔
					cellBuf.WriteString(" ")
				}
			case "t":
				inText = true
			case "tab":
				if inPara {
					paraBuf.WriteString(" ")
				} else if inCell {
					cellBuf.WriteString(" ")
				}
			case "br", "cr":
				if inPara {
					paraBuf.WriteString(" ")
				} else if inCell {
					cellBuf.WriteString(" ")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "tr":
				if tableDepth > 0 && len(rowCells) > 0 {
					tableRows = append(tableRows, strings.Join(rowCells, " | "))
				}
			case "tc":
				if inCell {
					rowCells = append(rowCells, strings.TrimSpace(cellBuf.String()))
					inCell = false
				}
			case "p":
				if inPara {
					paragraphs = append(paragraphs, paraBuf.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if !inText {
				break
			}
			if inPara {
				paraBuf.Write(t)
			} else if inCell {
				cellBuf.Write(t)
			}
		}
	}
	return paragraphs, tableRows
}

// readZipEntry 读取压缩包内指定文件，不存在或读取失败返回nil
func readZipEntry(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return data
	}
	return nil
}

// matchZipEntries 返回以prefix开头且以.xml结尾的条目名，按字典序排序
func matchZipEntries(zr *zip.Reader, prefix string) []string {
	var names []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, prefix) && strings.HasSuffix(f.Name, ".xml") {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return names
}
