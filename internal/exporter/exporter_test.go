package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"resume-parser-go/internal/types"
)

// 固定时间源，保证导出时间戳可断言
func fixedClock() func() time.Time {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func sampleParsedResume() *types.ParsedResume {
	return &types.ParsedResume{
		PersonalInfo: types.PersonalInfo{
			Name:     "John Smith",
			Email:    "john.smith@email.com",
			Phone:    "555-123-4567",
			Location: "Boston, MA",
			LinkedIn: "linkedin.com/in/johnsmith",
		},
		Summary: "Experienced software engineer.",
		Experience: []types.ExperienceEntry{
			{Title: "Senior Engineer", Company: "Acme Corp", Duration: "2019 - present", Description: "Built backend services"},
			{Title: "Engineer", Company: "Initech", Duration: "2015 - 2019", Description: "Maintained billing system"},
		},
		Education: []types.EducationEntry{
			{Degree: "bachelor", Institution: "MIT", Year: "2015", GPA: "3.8"},
		},
		Skills: []types.Skill{
			{Name: "python", Category: "Programming"},
			{Name: "docker", Category: "Cloud"},
		},
		RawText: "should not appear in exports",
		FileInfo: types.FileInfo{
			Filename:   "resume.pdf",
			FileSize:   2048,
			TextLength: 1500,
		},
		OverallScore: 72,
		ConfidenceScores: types.ConfidenceScores{
			Personal:   100,
			Experience: 40,
			Education:  30,
			Skills:     10,
		},
	}
}

func TestToJSON(t *testing.T) {
	e := NewResumeExporter(WithClock(fixedClock()))

	out, err := e.ToJSON(sampleParsedResume(), true)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "2024-06-01T12:00:00Z", decoded["export_timestamp"])
	assert.Equal(t, float64(72), decoded["overall_score"])

	personal, ok := decoded["personal_info"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "John Smith", personal["name"])

	// 原始文本不随导出泄露
	assert.NotContains(t, out, "should not appear in exports")
	_, hasRaw := decoded["raw_text"]
	assert.False(t, hasRaw)

	// 紧凑模式不含缩进
	compact, err := e.ToJSON(sampleParsedResume(), false)
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")
}

func TestToJSONNil(t *testing.T) {
	e := NewResumeExporter()
	_, err := e.ToJSON(nil, true)
	assert.Error(t, err)
}

func TestToCSVFlattening(t *testing.T) {
	e := NewResumeExporter(WithClock(fixedClock()))

	out, err := e.ToCSV(sampleParsedResume())
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(out))
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// 表头 + 每条工作经历一行
	require.Len(t, rows, 3)

	header := rows[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	// 表头按字典序排列
	for i := 1; i < len(header); i++ {
		assert.Less(t, header[i-1], header[i])
	}

	first, second := rows[1], rows[2]
	assert.Equal(t, "1", first[col["experience_index"]])
	assert.Equal(t, "Senior Engineer", first[col["job_title"]])
	assert.Equal(t, "2", second[col["experience_index"]])
	assert.Equal(t, "Initech", second[col["company"]])

	// 个人信息在每一行重复
	assert.Equal(t, "John Smith", first[col["name"]])
	assert.Equal(t, "John Smith", second[col["name"]])

	// 教育经历只补到第一行
	assert.Equal(t, "bachelor", first[col["degree"]])
	assert.Equal(t, "", second[col["degree"]])

	// 技能汇总只写在第一行
	assert.Equal(t, "python, docker", first[col["skills"]])
	assert.Equal(t, "", second[col["skills"]])
}

func TestToCSVNoExperience(t *testing.T) {
	e := NewResumeExporter(WithClock(fixedClock()))

	parsed := sampleParsedResume()
	parsed.Experience = nil

	out, err := e.ToCSV(parsed)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(out))
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// 没有工作经历时仅有基础行
	require.Len(t, rows, 2)

	col := make(map[string]int)
	for i, name := range rows[0] {
		col[name] = i
	}
	assert.Equal(t, "john.smith@email.com", rows[1][col["email"]])
	assert.Equal(t, "python, docker", rows[1][col["skills"]])
}

func TestToExcelSheets(t *testing.T) {
	e := NewResumeExporter(WithClock(fixedClock()))

	data, err := e.ToExcel(sampleParsedResume())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Personal Info", "Experience", "Education", "Skills", "Summary"},
		f.GetSheetList())

	// 个人信息表
	name, err := f.GetCellValue("Personal Info", "B2")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", name)

	score, err := f.GetCellValue("Personal Info", "B7")
	require.NoError(t, err)
	assert.Equal(t, "72", score)

	// 工作经历表
	rows, err := f.GetRows("Experience")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Acme Corp", rows[1][1])

	// 技能表
	skillRows, err := f.GetRows("Skills")
	require.NoError(t, err)
	require.Len(t, skillRows, 3)
	assert.Equal(t, []string{"python", "Programming"}, skillRows[1])
}

func TestToExcelSkipsEmptySheets(t *testing.T) {
	e := NewResumeExporter()

	parsed := sampleParsedResume()
	parsed.Experience = nil
	parsed.Education = nil
	parsed.Skills = nil

	data, err := e.ToExcel(parsed)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Personal Info", "Summary"}, f.GetSheetList())
}
