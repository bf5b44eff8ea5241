package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/logger"
)

// MessageQueue 消息队列接口
type MessageQueue interface {
	SetupResumeTopology() error
	PublishMessage(ctx context.Context, exchange, routingKey string, body []byte, persistent bool) error
	PublishJSON(ctx context.Context, exchange, routingKey string, data interface{}, persistent bool) error
	StartConsumer(queueName string, prefetchCount int, handler func([]byte) bool) (<-chan struct{}, error)
	Close() error
}

var _ MessageQueue = (*RabbitMQ)(nil)

// RabbitMQ 简历事件的消息队列客户端
// 拓扑在启动时一次性声明，之后只做发布和消费
type RabbitMQ struct {
	conn        *amqp.Connection
	channelPool sync.Pool
	publishMu   sync.Mutex
	cfg         *config.RabbitMQConfig
}

// NewRabbitMQ 连接RabbitMQ并初始化通道池
func NewRabbitMQ(cfg *config.RabbitMQConfig) (*RabbitMQ, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("RabbitMQ URL配置不能为空")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("无法连接到RabbitMQ服务器 (%s): %w", cfg.URL, err)
	}

	mq := &RabbitMQ{conn: conn, cfg: cfg}
	mq.channelPool = sync.Pool{
		New: func() interface{} {
			ch, chErr := conn.Channel()
			if chErr != nil {
				logger.Error().Err(chErr).Msg("创建RabbitMQ通道失败")
				return nil
			}
			return ch
		},
	}

	// 连接可用性检查
	if err := mq.withChannel(func(ch *amqp.Channel) error { return nil }); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info().Str("url", cfg.URL).Msg("成功连接到RabbitMQ服务器")
	return mq, nil
}

// withChannel 从池中取一个通道执行fn，用完归还
func (r *RabbitMQ) withChannel(fn func(*amqp.Channel) error) error {
	ch, _ := r.channelPool.Get().(*amqp.Channel)
	if ch == nil || ch.IsClosed() {
		newCh, err := r.conn.Channel()
		if err != nil {
			return fmt.Errorf("无法获取RabbitMQ通道: %w", err)
		}
		ch = newCh
	}
	defer r.channelPool.Put(ch)
	return fn(ch)
}

// Close 关闭连接，池中的通道随之失效
func (r *RabbitMQ) Close() error {
	return r.conn.Close()
}

// SetupResumeTopology 声明简历事件拓扑：
// 一个topic交换机，上传事件和解析完成事件各自绑定独立队列
func (r *RabbitMQ) SetupResumeTopology() error {
	return r.withChannel(func(ch *amqp.Channel) error {
		exchange := r.cfg.ResumeEventsExchange
		if exchange == "" {
			return fmt.Errorf("交换机名称不能为空")
		}
		if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("声明交换机 %s 失败: %w", exchange, err)
		}

		bindings := []struct {
			queue      string
			routingKey string
		}{
			{r.cfg.RawResumeQueue, r.cfg.UploadedRoutingKey},
			{r.cfg.ParsedResumeQueue, r.cfg.ParsedRoutingKey},
		}
		for _, b := range bindings {
			if _, err := ch.QueueDeclare(b.queue, true, false, false, false, nil); err != nil {
				return fmt.Errorf("声明队列 %s 失败: %w", b.queue, err)
			}
			if err := ch.QueueBind(b.queue, b.routingKey, exchange, false, nil); err != nil {
				return fmt.Errorf("绑定队列 %s 失败: %w", b.queue, err)
			}
			logger.Debug().
				Str("exchange", exchange).
				Str("queue", b.queue).
				Str("routing_key", b.routingKey).
				Msg("已声明并绑定队列")
		}
		return nil
	})
}

// PublishMessage 发布消息，persistent为true时消息落盘
func (r *RabbitMQ) PublishMessage(ctx context.Context, exchange, routingKey string, body []byte, persistent bool) error {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	deliveryMode := amqp.Transient
	if persistent {
		deliveryMode = amqp.Persistent
	}

	return r.withChannel(func(ch *amqp.Channel) error {
		return ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
			DeliveryMode: deliveryMode,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
	})
}

// PublishJSON 序列化data后发布
func (r *RabbitMQ) PublishJSON(ctx context.Context, exchange, routingKey string, data interface{}, persistent bool) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("JSON序列化失败: %w", err)
	}
	return r.PublishMessage(ctx, exchange, routingKey, body, persistent)
}

// StartConsumer 在独立通道上启动消费者
// handler返回true则Ack，返回false则Nack并重新入队
// 返回的channel在消费者退出时关闭；连接关闭即触发退出
func (r *RabbitMQ) StartConsumer(queueName string, prefetchCount int, handler func([]byte) bool) (<-chan struct{}, error) {
	// 消费者独占通道，不走池
	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("无法获取RabbitMQ通道: %w", err)
	}

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("设置QoS失败: %w", err)
	}

	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("注册消费者失败: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer ch.Close()
		defer logger.Info().Str("queue", queueName).Msg("RabbitMQ消费者已停止")

		logger.Info().Str("queue", queueName).Int("prefetch", prefetchCount).Msg("RabbitMQ消费者已启动")

		for d := range deliveries {
			if handler(d.Body) {
				if err := d.Ack(false); err != nil {
					logger.Error().Err(err).Msg("确认消息失败")
				}
			} else {
				if err := d.Nack(false, true); err != nil {
					logger.Error().Err(err).Msg("拒绝消息失败")
				}
			}
		}
	}()

	return done, nil
}
