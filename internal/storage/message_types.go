package storage

import "time"

// ResumeUploadedMessage 简历上传事件消息
// 上传入口写入MinIO后发布，由解析消费者接收处理
type ResumeUploadedMessage struct {
	SubmissionUUID      string    `json:"submission_uuid"`        // 提交UUID，主键
	SubmissionTimestamp time.Time `json:"submission_timestamp"`   // 提交时间戳
	OriginalFilename    string    `json:"original_filename"`      // 原始文件名
	FileSize            int64     `json:"file_size"`              // 文件大小(字节)
	OriginalFilePathOSS string    `json:"original_file_path_oss"` // MinIO中的对象路径
	RawFileMD5          string    `json:"raw_file_md5,omitempty"` // 原始文件的MD5，用于失败时回滚去重记录
}

// ResumeParsedMessage 简历解析完成事件消息
// 解析消费者处理结束后发布，成功与失败共用同一结构
type ResumeParsedMessage struct {
	SubmissionUUID        string  `json:"submission_uuid"`                    // 提交UUID
	ParsedTextPathOSS     string  `json:"parsed_text_path_oss,omitempty"`     // 解析文本在MinIO中的路径
	OverallScore          int     `json:"overall_score,omitempty"`            // 解析得到的综合评分
	ProcessingTimeSeconds float64 `json:"processing_time_seconds,omitempty"`  // 处理耗时(秒)
	Success               bool    `json:"success"`                            // 是否解析成功
	Error                 string  `json:"error,omitempty"`                    // 失败时的错误信息
}
