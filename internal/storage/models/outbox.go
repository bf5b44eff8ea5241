package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outbox消息状态
const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

// EventTypeResumeParsed 简历解析完成事件类型
const EventTypeResumeParsed = "resume.parsed"

// OutboxMessage 发件箱消息
// 业务记录与事件在同一事务内写入，由中继服务异步发布到RabbitMQ
type OutboxMessage struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement"`
	AggregateID      string     `gorm:"type:varchar(36);not null;index"`
	EventType        string     `gorm:"type:varchar(255);not null"`
	Payload          string     `gorm:"type:json;not null"`
	TargetExchange   string     `gorm:"type:varchar(255);not null"`
	TargetRoutingKey string     `gorm:"type:varchar(255);not null"`
	Status           string     `gorm:"type:varchar(20);default:'PENDING';not null;index:idx_outbox_status_created_at"`
	RetryCount       int        `gorm:"default:0"`
	CreatedAt        time.Time  `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_outbox_status_created_at,sort:asc"`
	ProcessedAt      *time.Time `gorm:"type:datetime(6);null"`
	ErrorMessage     string     `gorm:"type:text"`
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}

// NewOutboxMessage 构建待发布的发件箱消息，payload序列化为JSON
func NewOutboxMessage(aggregateID, eventType, exchange, routingKey string, payload interface{}) (*OutboxMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化发件箱消息失败: %w", err)
	}
	return &OutboxMessage{
		AggregateID:      aggregateID,
		EventType:        eventType,
		Payload:          string(data),
		TargetExchange:   exchange,
		TargetRoutingKey: routingKey,
		Status:           OutboxStatusPending,
	}, nil
}
