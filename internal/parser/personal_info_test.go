package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newPersonalInfo() *PersonalInfoExtractor {
	return NewPersonalInfoExtractor(NewHeuristicEntityTagger())
}

// TestExtractEmail 邮箱取第一个命中
func TestExtractEmail(t *testing.T) {
	text := "Contact: john.smith@example.com or backup@other.org"
	info := newPersonalInfo().Extract(text)
	assert.Equal(t, "john.smith@example.com", info.Email)
}

// TestExtractPhonePatternOrder 电话模式按固定顺序尝试，先命中者胜出
func TestExtractPhonePatternOrder(t *testing.T) {
	extractor := newPersonalInfo()

	// 纯数字3-3-4格式
	info := extractor.Extract("Call 555-123-4567 today")
	assert.Equal(t, "555-123-4567", info.Phone)

	// 括号区号格式
	info = extractor.Extract("Call (555) 123-4567 today")
	assert.Equal(t, "(555) 123-4567", info.Phone)

	// 国际格式
	info = extractor.Extract("Call +86 1381 2345 678 today")
	assert.NotEmpty(t, info.Phone)
	assert.Contains(t, info.Phone, "+86")

	// 同时存在时3-3-4模式优先
	info = extractor.Extract("Primary (999) 888-7777, alt 555-123-4567")
	assert.Equal(t, "555-123-4567", info.Phone)
}

// TestExtractNameFromEntity 实体识别出的两词以上人名优先
func TestExtractNameFromEntity(t *testing.T) {
	text := "John Smith\nSenior software developer since 2015"
	info := newPersonalInfo().Extract(text)
	assert.Equal(t, "John Smith", info.Name)
}

// TestExtractNameFallback 前5行中形似姓名的行作为退回策略
func TestExtractNameFallback(t *testing.T) {
	// 全小写行不会被实体识别命中，但满足退回条件
	text := "mary jane watson\n555-123-4567"
	info := newPersonalInfo().Extract(text)
	assert.Equal(t, "mary jane watson", info.Name)

	// 含数字或邮箱特征的行不算姓名
	text = "resume 2024\njohn@x.com\n1 Infinite Loop"
	info = newPersonalInfo().Extract(text)
	assert.Empty(t, info.Name)
}

// TestExtractLinkedIn 结果统一为小写
func TestExtractLinkedIn(t *testing.T) {
	text := "Profile: LinkedIn.com/in/John-Smith-123"
	info := newPersonalInfo().Extract(text)
	assert.Equal(t, "linkedin.com/in/john-smith-123", info.LinkedIn)
}

// TestExtractLocationRegexPrecedence "City, ST"正则命中时总是优先于实体结果
func TestExtractLocationRegexPrecedence(t *testing.T) {
	text := "Based in Austin, TX since 2019"
	info := newPersonalInfo().Extract(text)
	assert.Equal(t, "Austin, TX", info.Location)

	// City, State 形式
	text = "Located in Portland, Oregon"
	info = newPersonalInfo().Extract(text)
	assert.Equal(t, "Portland, Oregon", info.Location)
}

// TestExtractPersonalInfoAllEmpty 无证据时所有字段留空
func TestExtractPersonalInfoAllEmpty(t *testing.T) {
	info := newPersonalInfo().Extract("1234 5678 some digits only 9")
	assert.Empty(t, info.Name)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.LinkedIn)
	assert.Empty(t, info.Location)
}
