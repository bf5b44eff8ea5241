package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	ErrInsufficientText  = errors.New("提取文本过短")
	ErrInternalFault     = errors.New("流水线内部错误")
)

// ParsePipelineError 包含详细错误信息的自定义错误
type ParsePipelineError struct {
	Filename string
	State    PipelineState
	BaseErr  error
	Detail   string
}

func (e *ParsePipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (状态:%s, 文件:%s): %s", e.BaseErr, e.State, e.Filename, e.Detail)
	}
	return fmt.Sprintf("%s (状态:%s, 文件:%s)", e.BaseErr, e.State, e.Filename)
}

func (e *ParsePipelineError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ParsePipelineError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数

func NewUnsupportedFormatError(filename, detail string) error {
	return &ParsePipelineError{
		Filename: filename,
		State:    StateExtracting,
		BaseErr:  ErrUnsupportedFormat,
		Detail:   detail,
	}
}

func NewInsufficientTextError(filename string, textLen, minLen int) error {
	return &ParsePipelineError{
		Filename: filename,
		State:    StateValidating,
		BaseErr:  ErrInsufficientText,
		Detail:   fmt.Sprintf("提取到%d字符，低于%d字符下限", textLen, minLen),
	}
}

func NewInternalFaultError(filename string, state PipelineState, detail string) error {
	return &ParsePipelineError{
		Filename: filename,
		State:    state,
		BaseErr:  ErrInternalFault,
		Detail:   detail,
	}
}
