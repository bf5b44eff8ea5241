package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/exporter"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/processor"
	"resume-parser-go/internal/storage"
	"resume-parser-go/internal/storage/models"
	"resume-parser-go/internal/types"
	"resume-parser-go/pkg/utils"
)

// 上传响应的状态值
const (
	StatusSubmitted        = "SUBMITTED_FOR_PROCESSING"
	StatusDuplicateSkipped = "DUPLICATE_FILE_SKIPPED"
)

// ResumeHandler 简历处理器，协调上传、解析、查询、导出流程
type ResumeHandler struct {
	cfg      *config.Config
	storage  *storage.Storage
	pipeline *processor.ResumePipeline
	exporter *exporter.ResumeExporter
}

// NewResumeHandler 创建简历处理器
func NewResumeHandler(
	cfg *config.Config,
	storage *storage.Storage,
	pipeline *processor.ResumePipeline,
) *ResumeHandler {
	return &ResumeHandler{
		cfg:      cfg,
		storage:  storage,
		pipeline: pipeline,
		exporter: exporter.NewResumeExporter(),
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// HandleResumeUpload 处理简历上传请求
// 文件内容写入MinIO后发布上传事件，由消费者异步解析
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, fileSize int64, filename string) (*ResumeUploadResponse, error) {
	// 先校验文件格式，不接受的格式直接拒绝
	if _, err := processor.FormatFromFilename(filename); err != nil {
		return nil, err
	}

	// 读取文件内容并计算MD5（去重检查需要在上传前完成）
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	fileMD5Hex := utils.CalculateMD5(fileBytes)

	// 原子检查并记录文件MD5
	exists, err := h.storage.Redis.CheckAndAddFileMD5(ctx, fileMD5Hex)
	if err != nil {
		logger.Error().Err(err).Str("md5", fileMD5Hex).Msg("查询Redis文件MD5失败")
		return nil, fmt.Errorf("检查文件MD5重复性失败: %w", err)
	}
	if exists {
		// 重复文件直接返回已有记录的UUID
		existingUUID, err := h.storage.Redis.GetSubmissionByFileMD5(ctx, fileMD5Hex)
		if err != nil {
			logger.Warn().Err(err).Str("md5", fileMD5Hex).Msg("查询重复文件的submission_uuid失败")
		}
		logger.Info().
			Str("md5", fileMD5Hex).
			Str("filename", filename).
			Msg("检测到重复的文件MD5，跳过处理")
		return &ResumeUploadResponse{
			SubmissionUUID: existingUUID,
			Status:         StatusDuplicateSkipped,
		}, nil
	}

	// 生成UUIDv7作为提交标识
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	ext := filepath.Ext(filename)

	// 上传原始文件到MinIO
	originalObjectKey, _, err := h.storage.MinIO.UploadResumeFile(ctx, submissionUUID, ext, bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		// 上传失败时回滚去重记录，允许重试
		if rmErr := h.storage.Redis.RemoveFileMD5(ctx, fileMD5Hex); rmErr != nil {
			logger.Warn().Err(rmErr).Str("md5", fileMD5Hex).Msg("回滚文件MD5记录失败")
		}
		return nil, fmt.Errorf("上传简历到MinIO失败: %w", err)
	}

	// 记录MD5到UUID的映射，供重复上传时查询
	if err := h.storage.Redis.MapFileMD5ToSubmission(ctx, fileMD5Hex, submissionUUID); err != nil {
		logger.Warn().Err(err).Str("md5", fileMD5Hex).Msg("记录MD5到UUID映射失败")
	}

	// 发布上传事件
	message := storage.ResumeUploadedMessage{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: time.Now(),
		OriginalFilename:    filename,
		FileSize:            int64(len(fileBytes)),
		OriginalFilePathOSS: originalObjectKey,
		RawFileMD5:          fileMD5Hex,
	}
	err = h.storage.RabbitMQ.PublishJSON(
		ctx,
		h.cfg.RabbitMQ.ResumeEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
		message,
		true, // 持久化
	)
	if err != nil {
		return nil, fmt.Errorf("发布消息到RabbitMQ失败: %w", err)
	}

	return &ResumeUploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         StatusSubmitted,
	}, nil
}

// HandleSyncParse 同步解析上传的文件，不落库不发消息
// 用于调试和无中间件部署场景
func (h *ResumeHandler) HandleSyncParse(ctx context.Context, reader io.Reader, filename string) (*types.ParsedResume, error) {
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	return h.pipeline.Parse(ctx, fileBytes, filename)
}

// StartResumeParseConsumer 启动简历解析消费者
// 从原始简历队列消费上传事件，执行解析流水线并持久化结果
func (h *ResumeHandler) StartResumeParseConsumer(ctx context.Context) (<-chan struct{}, error) {
	logger.Info().
		Str("queue", h.cfg.RabbitMQ.RawResumeQueue).
		Int("prefetch", h.cfg.RabbitMQ.PrefetchCount).
		Msg("简历解析消费者就绪")

	return h.storage.RabbitMQ.StartConsumer(h.cfg.RabbitMQ.RawResumeQueue, h.cfg.RabbitMQ.PrefetchCount, func(data []byte) bool {
		var message storage.ResumeUploadedMessage
		if err := json.Unmarshal(data, &message); err != nil {
			logger.Error().Err(err).Msg("解析上传消息失败")
			// 消息格式损坏，重新入队也无法恢复
			return true
		}

		if err := h.processUploadedResume(ctx, message); err != nil {
			logger.Error().
				Err(err).
				Str("submission_uuid", message.SubmissionUUID).
				Msg("处理简历失败")
			// 基础设施错误重新入队，解析类错误已在内部落库为失败记录
			return false
		}
		return true
	})
}

// processUploadedResume 处理单条上传事件：下载、解析、持久化、发布结果
func (h *ResumeHandler) processUploadedResume(ctx context.Context, message storage.ResumeUploadedMessage) error {
	startTime := time.Now()

	// 1. 从MinIO下载原始文件
	fileContent, err := h.storage.MinIO.GetResumeFile(ctx, message.OriginalFilePathOSS)
	if err != nil {
		return fmt.Errorf("从MinIO获取简历文件失败: %w", err)
	}

	// 2. 执行解析流水线
	parsed, err := h.pipeline.Parse(ctx, fileContent, message.OriginalFilename)
	if err != nil {
		// 解析失败属于终态，落库失败记录后确认消息
		h.recordParseFailure(ctx, message, err)
		return nil
	}

	// 3. 文本级去重：内容相同但文件不同的简历在这里被识别，只记录不拦截
	textMD5 := utils.CalculateMD5([]byte(parsed.RawText))
	if dup, err := h.storage.Redis.CheckAndAddTextMD5(ctx, textMD5); err != nil {
		logger.Warn().Err(err).Msg("检查文本MD5失败")
	} else if dup {
		logger.Info().
			Str("submission_uuid", message.SubmissionUUID).
			Str("text_md5", textMD5).
			Msg("解析文本与已有简历内容重复")
	}

	// 4. 上传解析文本到MinIO
	parsedTextKey, err := h.storage.MinIO.UploadParsedText(ctx, message.SubmissionUUID, parsed.RawText)
	if err != nil {
		return fmt.Errorf("上传解析文本失败: %w", err)
	}

	// 5. 构建并保存数据库记录
	record, err := models.RecordFromParsed(parsed, message.SubmissionUUID, h.cfg.ActiveParserVersion)
	if err != nil {
		return fmt.Errorf("构建简历记录失败: %w", err)
	}
	record.UploadTimestamp = message.SubmissionTimestamp
	record.OriginalFilePathOSS = message.OriginalFilePathOSS
	record.ParsedTextPathOSS = parsedTextKey
	record.RawFileMD5 = message.RawFileMD5
	record.ProcessingTimeSeconds = time.Since(startTime).Seconds()

	// 解析完成事件通过outbox与记录同事务写入，由中继异步投递
	parsedMessage := storage.ResumeParsedMessage{
		SubmissionUUID:        message.SubmissionUUID,
		ParsedTextPathOSS:     parsedTextKey,
		OverallScore:          parsed.OverallScore,
		ProcessingTimeSeconds: record.ProcessingTimeSeconds,
		Success:               true,
	}
	event, err := models.NewOutboxMessage(
		message.SubmissionUUID,
		models.EventTypeResumeParsed,
		h.cfg.RabbitMQ.ResumeEventsExchange,
		h.cfg.RabbitMQ.ParsedRoutingKey,
		parsedMessage,
	)
	if err != nil {
		return err
	}
	if err := h.storage.MySQL.SaveResumeRecordWithEvent(ctx, record, event); err != nil {
		return fmt.Errorf("保存简历记录失败: %w", err)
	}

	// 6. 缓存评分
	if err := h.storage.Redis.CacheResumeScore(ctx, message.SubmissionUUID, parsed.OverallScore, constants.ParsedTextCacheDuration); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("缓存简历评分失败")
	}

	logger.Info().
		Str("submission_uuid", message.SubmissionUUID).
		Int("score", parsed.OverallScore).
		Float64("seconds", record.ProcessingTimeSeconds).
		Msg("简历解析完成")
	return nil
}

// recordParseFailure 解析失败时落库失败记录并回滚文件去重标记
func (h *ResumeHandler) recordParseFailure(ctx context.Context, message storage.ResumeUploadedMessage, parseErr error) {
	logger.Warn().
		Err(parseErr).
		Str("submission_uuid", message.SubmissionUUID).
		Str("filename", message.OriginalFilename).
		Msg("简历解析失败")

	if err := h.storage.MySQL.SaveErrorRecord(ctx, message.SubmissionUUID, message.OriginalFilename, parseErr.Error(), message.FileSize); err != nil {
		logger.Error().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("保存失败记录失败")
	}

	// 回滚文件MD5，同一文件修复后可以重新提交
	if message.RawFileMD5 != "" {
		if err := h.storage.Redis.RemoveFileMD5(ctx, message.RawFileMD5); err != nil {
			logger.Warn().Err(err).Str("md5", message.RawFileMD5).Msg("回滚文件MD5记录失败")
		}
	}

	failedMessage := storage.ResumeParsedMessage{
		SubmissionUUID: message.SubmissionUUID,
		Success:        false,
		Error:          parseErr.Error(),
	}
	if err := h.storage.RabbitMQ.PublishJSON(ctx, h.cfg.RabbitMQ.ResumeEventsExchange, h.cfg.RabbitMQ.ParsedRoutingKey, failedMessage, true); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("发布解析失败事件失败")
	}
}

// GetResume 查询单条简历记录，不存在时返回nil
func (h *ResumeHandler) GetResume(ctx context.Context, submissionUUID string) (*models.ResumeRecord, error) {
	return h.storage.MySQL.GetResumeByUUID(ctx, submissionUUID)
}

// ListResumes 分页列出简历记录
func (h *ResumeHandler) ListResumes(ctx context.Context, limit, offset int) ([]models.ResumeRecord, error) {
	return h.storage.MySQL.ListResumes(ctx, limit, offset)
}

// SearchResumes 按字段模糊搜索简历
func (h *ResumeHandler) SearchResumes(ctx context.Context, term, field string) ([]models.ResumeRecord, error) {
	return h.storage.MySQL.SearchResumes(ctx, term, field)
}

// GetStatistics 查询聚合统计
func (h *ResumeHandler) GetStatistics(ctx context.Context) (*models.ResumeStatistics, error) {
	return h.storage.MySQL.GetStatistics(ctx)
}

// DeleteResume 删除简历记录及其关联的MinIO对象和去重记录
func (h *ResumeHandler) DeleteResume(ctx context.Context, submissionUUID string) error {
	record, err := h.storage.MySQL.GetResumeByUUID(ctx, submissionUUID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("简历记录不存在: %s", submissionUUID)
	}

	if err := h.storage.MySQL.DeleteResume(ctx, submissionUUID); err != nil {
		return err
	}

	// 清理对象存储，失败不阻断删除流程
	ext := filepath.Ext(record.Filename)
	if err := h.storage.MinIO.DeleteResumeObjects(ctx, submissionUUID, ext); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("删除MinIO对象失败")
	}

	// 清理去重记录，允许同一文件重新提交
	if record.RawFileMD5 != "" {
		if err := h.storage.Redis.RemoveFileMD5(ctx, record.RawFileMD5); err != nil {
			logger.Warn().Err(err).Str("md5", record.RawFileMD5).Msg("移除文件MD5记录失败")
		}
	}
	return nil
}

// ExportResult 导出结果
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportResume 将指定简历导出为请求的格式
// format支持 json、csv、xlsx
func (h *ResumeHandler) ExportResume(ctx context.Context, submissionUUID, format string) (*ExportResult, error) {
	record, err := h.storage.MySQL.GetResumeByUUID(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("简历记录不存在: %s", submissionUUID)
	}
	if !record.IsProcessedSuccessfully {
		return nil, fmt.Errorf("简历 %s 解析失败，无可导出数据", submissionUUID)
	}

	parsed, err := record.ToParsedResume()
	if err != nil {
		return nil, err
	}

	switch format {
	case "json", "":
		out, err := h.exporter.ToJSON(parsed, true)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        []byte(out),
			ContentType: "application/json",
			Filename:    fmt.Sprintf("resume_%s.json", submissionUUID),
		}, nil
	case "csv":
		out, err := h.exporter.ToCSV(parsed)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        []byte(out),
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("resume_%s.csv", submissionUUID),
		}, nil
	case "xlsx":
		out, err := h.exporter.ToExcel(parsed)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        out,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    fmt.Sprintf("resume_%s.xlsx", submissionUUID),
		}, nil
	default:
		return nil, fmt.Errorf("不支持的导出格式: %s", format)
	}
}
