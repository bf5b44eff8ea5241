package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/storage/models"
)

// Database 关系数据库接口
type Database interface {
	// DB 返回GORM数据库连接实例
	DB() *gorm.DB

	// Close 关闭数据库连接
	Close() error

	// SaveResumeRecord 保存解析成功的简历记录
	SaveResumeRecord(ctx context.Context, record *models.ResumeRecord) error

	// SaveResumeRecordWithEvent 在同一事务内保存简历记录与发件箱消息
	SaveResumeRecordWithEvent(ctx context.Context, record *models.ResumeRecord, event *models.OutboxMessage) error

	// SaveErrorRecord 保存解析失败记录
	SaveErrorRecord(ctx context.Context, submissionUUID, filename, errorMessage string, fileSize int64) error

	// GetResumeByUUID 按主键获取简历记录
	GetResumeByUUID(ctx context.Context, submissionUUID string) (*models.ResumeRecord, error)

	// ListResumes 按上传时间倒序分页列出简历
	ListResumes(ctx context.Context, limit, offset int) ([]models.ResumeRecord, error)

	// SearchResumes 按字段模糊搜索
	SearchResumes(ctx context.Context, term, field string) ([]models.ResumeRecord, error)

	// GetStatistics 聚合统计
	GetStatistics(ctx context.Context) (*models.ResumeStatistics, error)

	// DeleteResume 删除简历记录
	DeleteResume(ctx context.Context, submissionUUID string) error
}

// 确保MySQL实现了Database接口
var _ Database = (*MySQL)(nil)

// MySQL 提供关系数据库功能
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	// 构建DSN，添加超时设置
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	// 配置GORM日志级别
	var logLevel gormlogger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = gormlogger.Silent
	case 2:
		logLevel = gormlogger.Error
	case 3:
		logLevel = gormlogger.Warn
	case 4:
		logLevel = gormlogger.Info
	default:
		logLevel = gormlogger.Info
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // 禁用自动外键创建
		Logger:                                   gormlogger.Default.LogMode(logLevel),
		PrepareStmt:                              true, // 开启预编译语句缓存
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	m := &MySQL{
		db:  db,
		cfg: cfg,
	}

	if err := m.autoMigrateSchema(); err != nil {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	logger.Info().Str("database", cfg.Database).Msg("成功连接到MySQL并自动迁移数据库结构")
	return m, nil
}

// autoMigrateSchema 使用GORM自动迁移数据库表结构
func (m *MySQL) autoMigrateSchema() error {
	// 迁移期间静默SQL日志
	silentDB := m.db.Session(&gorm.Session{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})

	if err := silentDB.AutoMigrate(&models.ResumeRecord{}, &models.OutboxMessage{}); err != nil {
		return fmt.Errorf("GORM自动迁移失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// SaveResumeRecord 保存解析成功的简历记录
func (m *MySQL) SaveResumeRecord(ctx context.Context, record *models.ResumeRecord) error {
	if record == nil {
		return fmt.Errorf("简历记录不能为空")
	}
	record.IsProcessedSuccessfully = true
	if err := m.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("保存简历记录失败: %w", err)
	}
	return nil
}

// SaveResumeRecordWithEvent 在同一事务内保存简历记录与发件箱消息
// 保证记录落库与事件发布原子一致，事件由outbox中继异步投递
func (m *MySQL) SaveResumeRecordWithEvent(ctx context.Context, record *models.ResumeRecord, event *models.OutboxMessage) error {
	if record == nil {
		return fmt.Errorf("简历记录不能为空")
	}
	record.IsProcessedSuccessfully = true
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("保存简历记录失败: %w", err)
		}
		if event != nil {
			if err := tx.Create(event).Error; err != nil {
				return fmt.Errorf("保存发件箱消息失败: %w", err)
			}
		}
		return nil
	})
}

// SaveErrorRecord 保存解析失败记录
// 失败记录与成功记录同表，仅填充文件元数据与错误信息
func (m *MySQL) SaveErrorRecord(ctx context.Context, submissionUUID, filename, errorMessage string, fileSize int64) error {
	record := &models.ResumeRecord{
		SubmissionUUID:          submissionUUID,
		Filename:                filename,
		FileSize:                fileSize,
		IsProcessedSuccessfully: false,
		ErrorMessage:            errorMessage,
		UploadTimestamp:         time.Now(),
	}
	if err := m.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("保存失败记录失败: %w", err)
	}
	return nil
}

// GetResumeByUUID 按主键获取简历记录
func (m *MySQL) GetResumeByUUID(ctx context.Context, submissionUUID string) (*models.ResumeRecord, error) {
	var record models.ResumeRecord
	err := m.db.WithContext(ctx).First(&record, "submission_uuid = ?", submissionUUID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询简历记录失败: %w", err)
	}
	return &record, nil
}

// ListResumes 按上传时间倒序分页列出简历
func (m *MySQL) ListResumes(ctx context.Context, limit, offset int) ([]models.ResumeRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var records []models.ResumeRecord
	err := m.db.WithContext(ctx).
		Order("upload_timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询简历列表失败: %w", err)
	}
	return records, nil
}

// 可搜索字段到列名的映射，白名单之外的字段一律退回姓名搜索
var searchColumns = map[string]string{
	"candidate_name": "candidate_name",
	"email":          "email",
	"location":       "location",
	"filename":       "filename",
}

// SearchResumes 按字段模糊搜索，结果按上传时间倒序
func (m *MySQL) SearchResumes(ctx context.Context, term, field string) ([]models.ResumeRecord, error) {
	column, ok := searchColumns[field]
	if !ok {
		column = "candidate_name"
	}

	var records []models.ResumeRecord
	err := m.db.WithContext(ctx).
		Where(fmt.Sprintf("%s LIKE ?", column), "%"+term+"%").
		Order("upload_timestamp DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("搜索简历失败: %w", err)
	}
	return records, nil
}

// GetStatistics 聚合统计：总量、成功率、平均分、近7天上传数
func (m *MySQL) GetStatistics(ctx context.Context) (*models.ResumeStatistics, error) {
	stats := &models.ResumeStatistics{}
	db := m.db.WithContext(ctx).Model(&models.ResumeRecord{})

	if err := db.Count(&stats.TotalResumes).Error; err != nil {
		return nil, fmt.Errorf("统计总量失败: %w", err)
	}
	if err := m.db.WithContext(ctx).Model(&models.ResumeRecord{}).
		Where("is_processed_successfully = ?", true).
		Count(&stats.SuccessfulParses).Error; err != nil {
		return nil, fmt.Errorf("统计成功数失败: %w", err)
	}
	stats.FailedParses = stats.TotalResumes - stats.SuccessfulParses
	if stats.TotalResumes > 0 {
		stats.SuccessRate = float64(stats.SuccessfulParses) / float64(stats.TotalResumes) * 100
	}

	var avg *float64
	if err := m.db.WithContext(ctx).Model(&models.ResumeRecord{}).
		Where("is_processed_successfully = ?", true).
		Select("AVG(overall_score)").
		Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("统计平均分失败: %w", err)
	}
	if avg != nil {
		stats.AverageScore = *avg
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := m.db.WithContext(ctx).Model(&models.ResumeRecord{}).
		Where("upload_timestamp >= ?", weekAgo).
		Count(&stats.RecentUploads).Error; err != nil {
		return nil, fmt.Errorf("统计近期上传失败: %w", err)
	}

	return stats, nil
}

// DeleteResume 删除简历记录，记录不存在时返回错误
func (m *MySQL) DeleteResume(ctx context.Context, submissionUUID string) error {
	result := m.db.WithContext(ctx).Delete(&models.ResumeRecord{}, "submission_uuid = ?", submissionUUID)
	if result.Error != nil {
		return fmt.Errorf("删除简历记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("简历记录不存在: %s", submissionUUID)
	}
	return nil
}
