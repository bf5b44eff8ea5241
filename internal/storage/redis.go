package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
)

// ErrNotFound 键不存在时返回，包装底层的 redis.Nil
var ErrNotFound = redis.Nil

// Redis 封装Redis客户端，提供文件去重与评分缓存能力
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		// 重试设置
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond,
	}

	client := redis.NewClient(opt)

	// Ping确认连接可用
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 检查Redis连接
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// GetMD5ExpireDuration 返回配置的MD5记录过期时间
func (r *Redis) GetMD5ExpireDuration() time.Duration {
	days := r.config.MD5RecordExpireDays
	if days <= 0 {
		days = 365 // 默认1年
	}
	return time.Duration(days) * 24 * time.Hour
}

// CheckAndAddFileMD5 原子地检查并记录原始文件MD5，返回是否已存在
// 用于同一文件重复上传的去重判断
func (r *Redis) CheckAndAddFileMD5(ctx context.Context, md5Hex string) (bool, error) {
	return r.checkAndAddMD5(ctx, constants.KeyFileMD5Set, md5Hex)
}

// CheckAndAddTextMD5 原子地检查并记录解析文本MD5，返回是否已存在
// 不同文件名但内容相同的简历会在这里被识别
func (r *Redis) CheckAndAddTextMD5(ctx context.Context, md5Hex string) (bool, error) {
	return r.checkAndAddMD5(ctx, constants.KeyTextMD5Set, md5Hex)
}

// checkAndAddMD5 使用Lua脚本原子地完成 SISMEMBER + SADD + EXPIRE
func (r *Redis) checkAndAddMD5(ctx context.Context, setKey, md5Hex string) (bool, error) {
	if r.Client == nil {
		return false, fmt.Errorf("redis client is not initialized")
	}

	script := `
		local exists = redis.call('SISMEMBER', KEYS[1], ARGV[1])
		redis.call('SADD', KEYS[1], ARGV[1])
		redis.call('EXPIRE', KEYS[1], ARGV[2])
		return exists
	`

	expiry := int64(r.GetMD5ExpireDuration().Seconds())
	res, err := r.Client.Eval(ctx, script, []string{setKey}, md5Hex, expiry).Result()
	if err != nil {
		return false, fmt.Errorf("执行原子检查和添加操作失败: %w", err)
	}

	existsVal, ok := res.(int64)
	if !ok {
		return false, fmt.Errorf("意外的Redis返回类型: %T", res)
	}
	return existsVal == 1, nil
}

// RemoveFileMD5 从去重集合中移除原始文件MD5
// 删除简历记录后调用，允许同一文件重新提交
func (r *Redis) RemoveFileMD5(ctx context.Context, md5Hex string) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	if err := r.Client.SRem(ctx, constants.KeyFileMD5Set, md5Hex).Err(); err != nil {
		return fmt.Errorf("从集合中移除MD5失败: %w", err)
	}
	return nil
}

// MapFileMD5ToSubmission 记录文件MD5与submission_uuid的映射
// 重复上传时可以通过该映射直接返回已有记录
func (r *Redis) MapFileMD5ToSubmission(ctx context.Context, md5Hex, submissionUUID string) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyFileMD5ToSubmissionUUID, md5Hex)
	return r.Client.SetNX(ctx, key, submissionUUID, r.GetMD5ExpireDuration()).Err()
}

// GetSubmissionByFileMD5 根据文件MD5查询已有的submission_uuid
// 映射不存在时返回空字符串
func (r *Redis) GetSubmissionByFileMD5(ctx context.Context, md5Hex string) (string, error) {
	if r.Client == nil {
		return "", fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyFileMD5ToSubmissionUUID, md5Hex)
	val, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("查询MD5映射失败: %w", err)
	}
	return val, nil
}

// CacheResumeScore 缓存简历评分
func (r *Redis) CacheResumeScore(ctx context.Context, submissionUUID string, score int, ttl time.Duration) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyResumeScore, submissionUUID)
	return r.Client.Set(ctx, key, strconv.Itoa(score), ttl).Err()
}

// GetCachedResumeScore 获取缓存的简历评分
// 缓存未命中时返回 ErrNotFound
func (r *Redis) GetCachedResumeScore(ctx context.Context, submissionUUID string) (int, error) {
	if r.Client == nil {
		return 0, fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyResumeScore, submissionUUID)
	val, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		return 0, err // 包括 redis.Nil
	}
	score, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("评分缓存格式错误: %w", err)
	}
	return score, nil
}

// AcquireLock 尝试获取一个分布式锁，成功返回锁持有者标识，失败返回空字符串
func (r *Redis) AcquireLock(ctx context.Context, lockKey string, expiration time.Duration) (string, error) {
	if r.Client == nil {
		return "", fmt.Errorf("redis client is not initialized")
	}
	lockValue := fmt.Sprintf("%d", time.Now().UnixNano())
	ok, err := r.Client.SetNX(ctx, lockKey, lockValue, expiration).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return lockValue, nil
	}
	return "", nil
}

// ReleaseLock 释放一个分布式锁，使用Lua脚本保证只释放自己持有的锁
func (r *Redis) ReleaseLock(ctx context.Context, lockKey string, lockValue string) (bool, error) {
	if r.Client == nil {
		return false, fmt.Errorf("redis client is not initialized")
	}
	script := `
        if redis.call("get", KEYS[1]) == ARGV[1] then
            return redis.call("del", KEYS[1])
        else
            return 0
        end
    `
	res, err := r.Client.Eval(ctx, script, []string{lockKey}, lockValue).Result()
	if err != nil {
		return false, err
	}

	if released, ok := res.(int64); ok && released == 1 {
		return true, nil
	}
	return false, nil
}
