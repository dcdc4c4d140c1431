package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cv-filler-go/internal/config"
	"cv-filler-go/internal/constants"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key is not found in Redis.
// It wraps the underlying redis.Nil error for abstraction.
var ErrNotFound = redis.Nil

// FillResultEntry 填充结果缓存条目，与MySQL记录的关键字段对应
type FillResultEntry struct {
	SubmissionUUID  string `json:"submission_uuid"`
	Status          string `json:"status"`
	OutputObjectKey string `json:"output_object_key,omitempty"`
	ErrorDetail     string `json:"error_detail,omitempty"`
}

// Redis wraps the Redis client
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter creates a new Redis client connection
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
		PoolSize:     cfg.PoolSize,     // 默认10
		MinIdleConns: cfg.MinIdleConns, // 默认2

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,  // 默认5秒
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,  // 默认3秒
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second, // 默认3秒
	}

	client := redis.NewClient(opt)

	// Ping to check connection
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

// Close closes the Redis client connection
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping checks the Redis connection
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// GetTemplateMD5ExpireDuration 返回配置的模板MD5映射过期时间
func (r *Redis) GetTemplateMD5ExpireDuration() time.Duration {
	days := r.config.TemplateMD5ExpireDays
	if days <= 0 {
		days = 365 // 默认1年
	}
	return time.Duration(days) * 24 * time.Hour
}

// SetTemplateObjectKey 记录模板MD5到MinIO对象键的映射并设置过期时间。
// 同一模板重复上传时通过该映射跳过对象存储写入。
func (r *Redis) SetTemplateObjectKey(ctx context.Context, md5Hex, objectKey string) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyTemplateMD5ToObjectKey, md5Hex)
	return r.Client.Set(ctx, key, objectKey, r.GetTemplateMD5ExpireDuration()).Err()
}

// GetTemplateObjectKey 查询模板MD5对应的MinIO对象键。
// 映射不存在时返回 ErrNotFound。
func (r *Redis) GetTemplateObjectKey(ctx context.Context, md5Hex string) (string, error) {
	if r.Client == nil {
		return "", fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyTemplateMD5ToObjectKey, md5Hex)
	return r.Client.Get(ctx, key).Result()
}

// SetFillResult 缓存填充结果，供异步查询接口快速返回
func (r *Redis) SetFillResult(ctx context.Context, entry *FillResultEntry, expiry time.Duration) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	if entry == nil || entry.SubmissionUUID == "" {
		return fmt.Errorf("fill result entry is invalid")
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal fill result: %w", err)
	}
	key := fmt.Sprintf(constants.KeyFillResult, entry.SubmissionUUID)
	return r.Client.Set(ctx, key, data, expiry).Err()
}

// GetFillResult 读取缓存的填充结果。
// 缓存未命中时返回 ErrNotFound，调用方应回源MySQL。
func (r *Redis) GetFillResult(ctx context.Context, submissionUUID string) (*FillResultEntry, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyFillResult, submissionUUID)
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var entry FillResultEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fill result for %s: %w", submissionUUID, err)
	}
	return &entry, nil
}
