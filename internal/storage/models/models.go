package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"resume-parser-go/internal/types"
)

// ResumeRecord 简历解析结果表
// 解析成功与失败共用一张表，以IsProcessedSuccessfully区分
type ResumeRecord struct {
	SubmissionUUID  string    `gorm:"type:char(36);primaryKey"`
	Filename        string    `gorm:"type:varchar(255);not null"`
	UploadTimestamp time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_rr_upload_timestamp"`

	// 个人信息
	CandidateName string `gorm:"type:varchar(255);index:idx_rr_candidate_name"`
	Email         string `gorm:"type:varchar(255);index:idx_rr_email"`
	Phone         string `gorm:"type:varchar(50)"`
	Location      string `gorm:"type:varchar(255)"`
	LinkedIn      string `gorm:"type:varchar(255)"`

	// 概要
	ProfessionalSummary string `gorm:"type:text"`

	// 评分
	OverallScore         int `gorm:"default:0;index:idx_rr_overall_score"`
	PersonalConfidence   int `gorm:"default:0"`
	ExperienceConfidence int `gorm:"default:0"`
	EducationConfidence  int `gorm:"default:0"`
	SkillsConfidence     int `gorm:"default:0"`

	// 结构化数据
	ExperienceData datatypes.JSON `gorm:"type:json"`
	EducationData  datatypes.JSON `gorm:"type:json"`
	SkillsData     datatypes.JSON `gorm:"type:json"`

	// 文件元数据
	FileSize   int64
	TextLength int

	// 对象存储路径
	OriginalFilePathOSS string `gorm:"type:varchar(1024)"`
	ParsedTextPathOSS   string `gorm:"type:varchar(1024)"`

	// 去重与版本
	RawFileMD5    string `gorm:"type:char(32);index:idx_rr_raw_file_md5"`
	ParserVersion string `gorm:"type:varchar(50)"`

	// 处理元数据
	ProcessingTimeSeconds   float64 `gorm:"default:0"`
	IsProcessedSuccessfully bool    `gorm:"default:true;index:idx_rr_is_processed"`
	ErrorMessage            string  `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ResumeRecord) TableName() string {
	return "resume_records"
}

// ResumeStatistics 库内简历的聚合统计
type ResumeStatistics struct {
	TotalResumes     int64   `json:"total_resumes"`
	SuccessfulParses int64   `json:"successful_parses"`
	FailedParses     int64   `json:"failed_parses"`
	SuccessRate      float64 `json:"success_rate"`
	AverageScore     float64 `json:"average_score"`
	RecentUploads    int64   `json:"recent_uploads"` // 最近7天
}

// SliceToJSON Helper function to convert any slice to datatypes.JSON
func SliceToJSON(v interface{}) (datatypes.JSON, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// StringToJSON Helper function to convert string to datatypes.JSON
func StringToJSON(s string) datatypes.JSON {
	return datatypes.JSON(s)
}

// RecordFromParsed 将解析结果转换为数据库记录
// 结构化的经历、教育、技能字段序列化为JSON列存储
func RecordFromParsed(parsed *types.ParsedResume, submissionUUID, parserVersion string) (*ResumeRecord, error) {
	if parsed == nil {
		return nil, fmt.Errorf("解析结果不能为空")
	}

	experienceJSON, err := SliceToJSON(parsed.Experience)
	if err != nil {
		return nil, fmt.Errorf("序列化工作经历失败: %w", err)
	}
	educationJSON, err := SliceToJSON(parsed.Education)
	if err != nil {
		return nil, fmt.Errorf("序列化教育经历失败: %w", err)
	}
	skillsJSON, err := SliceToJSON(parsed.Skills)
	if err != nil {
		return nil, fmt.Errorf("序列化技能失败: %w", err)
	}

	return &ResumeRecord{
		SubmissionUUID:  submissionUUID,
		Filename:        parsed.FileInfo.Filename,
		UploadTimestamp: time.Now(),

		CandidateName: parsed.PersonalInfo.Name,
		Email:         parsed.PersonalInfo.Email,
		Phone:         parsed.PersonalInfo.Phone,
		Location:      parsed.PersonalInfo.Location,
		LinkedIn:      parsed.PersonalInfo.LinkedIn,

		ProfessionalSummary: parsed.Summary,

		OverallScore:         parsed.OverallScore,
		PersonalConfidence:   parsed.ConfidenceScores.Personal,
		ExperienceConfidence: parsed.ConfidenceScores.Experience,
		EducationConfidence:  parsed.ConfidenceScores.Education,
		SkillsConfidence:     parsed.ConfidenceScores.Skills,

		ExperienceData: experienceJSON,
		EducationData:  educationJSON,
		SkillsData:     skillsJSON,

		FileSize:   int64(parsed.FileInfo.FileSize),
		TextLength: parsed.FileInfo.TextLength,

		ParserVersion:           parserVersion,
		IsProcessedSuccessfully: true,
	}, nil
}

// ToParsedResume 将数据库记录还原为解析结果，用于查询与导出
func (r *ResumeRecord) ToParsedResume() (*types.ParsedResume, error) {
	parsed := &types.ParsedResume{
		PersonalInfo: types.PersonalInfo{
			Name:     r.CandidateName,
			Email:    r.Email,
			Phone:    r.Phone,
			Location: r.Location,
			LinkedIn: r.LinkedIn,
		},
		Summary:      r.ProfessionalSummary,
		OverallScore: r.OverallScore,
		ConfidenceScores: types.ConfidenceScores{
			Personal:   r.PersonalConfidence,
			Experience: r.ExperienceConfidence,
			Education:  r.EducationConfidence,
			Skills:     r.SkillsConfidence,
		},
		FileInfo: types.FileInfo{
			Filename:   r.Filename,
			FileSize:   int(r.FileSize),
			TextLength: r.TextLength,
		},
	}

	if len(r.ExperienceData) > 0 {
		if err := json.Unmarshal(r.ExperienceData, &parsed.Experience); err != nil {
			return nil, fmt.Errorf("反序列化工作经历失败: %w", err)
		}
	}
	if len(r.EducationData) > 0 {
		if err := json.Unmarshal(r.EducationData, &parsed.Education); err != nil {
			return nil, fmt.Errorf("反序列化教育经历失败: %w", err)
		}
	}
	if len(r.SkillsData) > 0 {
		if err := json.Unmarshal(r.SkillsData, &parsed.Skills); err != nil {
			return nil, fmt.Errorf("反序列化技能失败: %w", err)
		}
	}
	return parsed, nil
}
