package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"resume-parser-go/internal/types"
)

// ResumeExporter 将解析结果导出为JSON、CSV、Excel格式
type ResumeExporter struct {
	nowFunc func() time.Time
}

// ExporterOption 导出器选项
type ExporterOption func(*ResumeExporter)

// WithClock 替换时间源，测试时用于固定导出时间戳
func WithClock(now func() time.Time) ExporterOption {
	return func(e *ResumeExporter) {
		e.nowFunc = now
	}
}

// NewResumeExporter 创建导出器
func NewResumeExporter(opts ...ExporterOption) *ResumeExporter {
	e := &ResumeExporter{
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// exportEnvelope JSON导出的顶层结构
// 原始文本默认不导出
type exportEnvelope struct {
	ExportTimestamp  string                  `json:"export_timestamp"`
	FileInfo         types.FileInfo          `json:"file_info"`
	OverallScore     int                     `json:"overall_score"`
	ConfidenceScores types.ConfidenceScores  `json:"confidence_scores"`
	PersonalInfo     types.PersonalInfo      `json:"personal_info"`
	Summary          string                  `json:"summary"`
	Experience       []types.ExperienceEntry `json:"experience"`
	Education        []types.EducationEntry  `json:"education"`
	Skills           []types.Skill           `json:"skills"`
}

// ToJSON 导出为JSON字符串
func (e *ResumeExporter) ToJSON(parsed *types.ParsedResume, pretty bool) (string, error) {
	if parsed == nil {
		return "", fmt.Errorf("解析结果不能为空")
	}

	envelope := exportEnvelope{
		ExportTimestamp:  e.nowFunc().Format(time.RFC3339),
		FileInfo:         parsed.FileInfo,
		OverallScore:     parsed.OverallScore,
		ConfidenceScores: parsed.ConfidenceScores,
		PersonalInfo:     parsed.PersonalInfo,
		Summary:          parsed.Summary,
		Experience:       parsed.Experience,
		Education:        parsed.Education,
		Skills:           parsed.Skills,
	}

	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(envelope, "", "  ")
	} else {
		data, err = json.Marshal(envelope)
	}
	if err != nil {
		return "", fmt.Errorf("JSON序列化失败: %w", err)
	}
	return string(data), nil
}

// ToCSV 导出为CSV字符串
// 扁平化规则：每条工作经历一行，教育经历按序补到前几行，技能汇总到第一行
func (e *ResumeExporter) ToCSV(parsed *types.ParsedResume) (string, error) {
	if parsed == nil {
		return "", fmt.Errorf("解析结果不能为空")
	}

	records := e.flattenForCSV(parsed)

	// 收集所有出现过的列名并排序，保证输出稳定
	keySet := make(map[string]bool)
	for _, record := range records {
		for k := range record {
			keySet[k] = true
		}
	}
	fieldnames := make([]string, 0, len(keySet))
	for k := range keySet {
		fieldnames = append(fieldnames, k)
	}
	sort.Strings(fieldnames)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(fieldnames); err != nil {
		return "", fmt.Errorf("写入CSV表头失败: %w", err)
	}
	for _, record := range records {
		row := make([]string, len(fieldnames))
		for i, field := range fieldnames {
			row[i] = record[field]
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("写入CSV行失败: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("CSV输出失败: %w", err)
	}
	return buf.String(), nil
}

// flattenForCSV 将嵌套结构扁平化为若干行
func (e *ResumeExporter) flattenForCSV(parsed *types.ParsedResume) []map[string]string {
	baseRecord := map[string]string{
		"export_timestamp":      e.nowFunc().Format(time.RFC3339),
		"filename":              parsed.FileInfo.Filename,
		"overall_score":         strconv.Itoa(parsed.OverallScore),
		"name":                  parsed.PersonalInfo.Name,
		"email":                 parsed.PersonalInfo.Email,
		"phone":                 parsed.PersonalInfo.Phone,
		"location":              parsed.PersonalInfo.Location,
		"linkedin":              parsed.PersonalInfo.LinkedIn,
		"summary":               parsed.Summary,
		"confidence_personal":   strconv.Itoa(parsed.ConfidenceScores.Personal),
		"confidence_experience": strconv.Itoa(parsed.ConfidenceScores.Experience),
		"confidence_education":  strconv.Itoa(parsed.ConfidenceScores.Education),
		"confidence_skills":     strconv.Itoa(parsed.ConfidenceScores.Skills),
	}

	var records []map[string]string

	// 每条工作经历展开为一行，没有经历时仅保留基础行
	if len(parsed.Experience) > 0 {
		for i, exp := range parsed.Experience {
			record := copyRecord(baseRecord)
			record["experience_index"] = strconv.Itoa(i + 1)
			record["job_title"] = exp.Title
			record["company"] = exp.Company
			record["job_duration"] = exp.Duration
			record["job_location"] = exp.Location
			record["job_description"] = exp.Description
			records = append(records, record)
		}
	} else {
		records = append(records, baseRecord)
	}

	// 教育经历按序补到已有行上，超出行数的条目丢弃
	for i, edu := range parsed.Education {
		if i >= len(records) {
			break
		}
		records[i]["degree"] = edu.Degree
		records[i]["institution"] = edu.Institution
		records[i]["graduation_year"] = edu.Year
		records[i]["gpa"] = edu.GPA
	}

	// 技能合并为逗号分隔列表，只写在第一行
	if len(parsed.Skills) > 0 {
		names := make([]string, 0, len(parsed.Skills))
		for _, skill := range parsed.Skills {
			if skill.Name != "" {
				names = append(names, skill.Name)
			}
		}
		records[0]["skills"] = strings.Join(names, ", ")
	}

	return records
}

func copyRecord(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Excel工作表名称
const (
	sheetPersonalInfo = "Personal Info"
	sheetExperience   = "Experience"
	sheetEducation    = "Education"
	sheetSkills       = "Skills"
	sheetSummary      = "Summary"
)

// ToExcel 导出为多工作表的xlsx文件
// 经历、教育、技能为空时不生成对应工作表
func (e *ResumeExporter) ToExcel(parsed *types.ParsedResume) ([]byte, error) {
	if parsed == nil {
		return nil, fmt.Errorf("解析结果不能为空")
	}

	f := excelize.NewFile()
	defer f.Close()

	// 默认Sheet1改名为个人信息表
	if err := f.SetSheetName("Sheet1", sheetPersonalInfo); err != nil {
		return nil, fmt.Errorf("重命名工作表失败: %w", err)
	}
	if err := e.writePersonalInfoSheet(f, parsed); err != nil {
		return nil, err
	}

	if len(parsed.Experience) > 0 {
		if err := e.writeExperienceSheet(f, parsed.Experience); err != nil {
			return nil, err
		}
	}
	if len(parsed.Education) > 0 {
		if err := e.writeEducationSheet(f, parsed.Education); err != nil {
			return nil, err
		}
	}
	if len(parsed.Skills) > 0 {
		if err := e.writeSkillsSheet(f, parsed.Skills); err != nil {
			return nil, err
		}
	}
	if err := e.writeSummarySheet(f, parsed); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成Excel文件失败: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRows 从A1开始逐行写入工作表
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("计算单元格坐标失败: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("写入工作表 %s 第%d行失败: %w", sheet, i+1, err)
		}
	}
	return nil
}

func (e *ResumeExporter) writePersonalInfoSheet(f *excelize.File, parsed *types.ParsedResume) error {
	rows := [][]interface{}{
		{"Field", "Value"},
		{"Name", parsed.PersonalInfo.Name},
		{"Email", parsed.PersonalInfo.Email},
		{"Phone", parsed.PersonalInfo.Phone},
		{"Location", parsed.PersonalInfo.Location},
		{"Linkedin", parsed.PersonalInfo.LinkedIn},
		{"Overall Score", parsed.OverallScore},
		{"Confidence - Personal", fmt.Sprintf("%d%%", parsed.ConfidenceScores.Personal)},
		{"Confidence - Experience", fmt.Sprintf("%d%%", parsed.ConfidenceScores.Experience)},
		{"Confidence - Education", fmt.Sprintf("%d%%", parsed.ConfidenceScores.Education)},
		{"Confidence - Skills", fmt.Sprintf("%d%%", parsed.ConfidenceScores.Skills)},
	}
	return writeRows(f, sheetPersonalInfo, rows)
}

func (e *ResumeExporter) writeExperienceSheet(f *excelize.File, entries []types.ExperienceEntry) error {
	if _, err := f.NewSheet(sheetExperience); err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}
	rows := [][]interface{}{
		{"title", "company", "duration", "location", "description"},
	}
	for _, exp := range entries {
		rows = append(rows, []interface{}{exp.Title, exp.Company, exp.Duration, exp.Location, exp.Description})
	}
	return writeRows(f, sheetExperience, rows)
}

func (e *ResumeExporter) writeEducationSheet(f *excelize.File, entries []types.EducationEntry) error {
	if _, err := f.NewSheet(sheetEducation); err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}
	rows := [][]interface{}{
		{"degree", "institution", "year", "gpa"},
	}
	for _, edu := range entries {
		rows = append(rows, []interface{}{edu.Degree, edu.Institution, edu.Year, edu.GPA})
	}
	return writeRows(f, sheetEducation, rows)
}

func (e *ResumeExporter) writeSkillsSheet(f *excelize.File, skills []types.Skill) error {
	if _, err := f.NewSheet(sheetSkills); err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}
	rows := [][]interface{}{
		{"Skill", "Category"},
	}
	for _, skill := range skills {
		category := skill.Category
		if category == "" {
			category = "General"
		}
		rows = append(rows, []interface{}{skill.Name, category})
	}
	return writeRows(f, sheetSkills, rows)
}

func (e *ResumeExporter) writeSummarySheet(f *excelize.File, parsed *types.ParsedResume) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}
	rows := [][]interface{}{
		{"Category", "Field", "Value"},
		{"File Info", "Filename", parsed.FileInfo.Filename},
		{"File Info", "File Size", parsed.FileInfo.FileSize},
		{"File Info", "Text Length", parsed.FileInfo.TextLength},
	}
	if parsed.Summary != "" {
		rows = append(rows, []interface{}{"Professional Summary", "Summary", parsed.Summary})
	}
	rows = append(rows,
		[]interface{}{"Statistics", "Experience Entries", len(parsed.Experience)},
		[]interface{}{"Statistics", "Education Entries", len(parsed.Education)},
		[]interface{}{"Statistics", "Skills Count", len(parsed.Skills)},
	)
	return writeRows(f, sheetSummary, rows)
}
