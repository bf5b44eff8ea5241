package constants

import "time"

const (
	// DefaultParserVer 解析器版本号，写入解析记录便于后续重算
	DefaultParserVer = "1.0"

	// MinValidTextLength 提取文本的最低有效长度（字符数）
	// 低于该值视为提取失败，流水线直接终止
	MinValidTextLength = 50

	// PDFRetryThreshold 主提取策略结果低于该长度时尝试备用策略
	PDFRetryThreshold = 100

	// ReferenceYear "present"/"current" 在工龄计算中折算到的年份
	ReferenceYear = 2024

	// GeneralSkillCategory 未命中分类表时的默认技能类别
	GeneralSkillCategory = "General"

	// ParsedTextCacheDuration 解析文本对象的保留时长
	ParsedTextCacheDuration = 24 * time.Hour
)
