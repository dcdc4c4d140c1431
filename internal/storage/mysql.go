package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cv-filler-go/internal/config"
	"cv-filler-go/internal/constants"
	"cv-filler-go/internal/storage/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database 关系数据库接口
type Database interface {
	// DB 返回GORM数据库连接实例
	DB() *gorm.DB

	// Close 关闭数据库连接
	Close() error

	// 填充记录操作
	CreateFillRecord(ctx context.Context, record *models.CVFillRecord) error
	UpdateFillRecordStatus(ctx context.Context, submissionUUID, status, errorDetail string) error
	CompleteFillRecord(ctx context.Context, submissionUUID, outputObjectKey string) error
	GetFillRecord(ctx context.Context, submissionUUID string) (*models.CVFillRecord, error)
}

// 确保MySQL实现了Database接口
var _ Database = (*MySQL)(nil)

// ErrRecordNotFound 查询的填充记录不存在
var ErrRecordNotFound = gorm.ErrRecordNotFound

// MySQL 提供关系数据库功能
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并完成表迁移
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	// 构建DSN，添加超时设置
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	// 配置GORM日志级别
	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true, // 开启预编译语句缓存
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层sql.DB失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	// 表迁移
	if err := db.AutoMigrate(&models.CVFillRecord{}); err != nil {
		return nil, fmt.Errorf("迁移填充记录表失败: %w", err)
	}

	return &MySQL{db: db, cfg: cfg}, nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层sql.DB失败: %w", err)
	}
	return sqlDB.Close()
}

// CreateFillRecord 创建填充记录
func (m *MySQL) CreateFillRecord(ctx context.Context, record *models.CVFillRecord) error {
	if err := m.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("创建填充记录失败 (UUID:%s): %w", record.SubmissionUUID, err)
	}
	return nil
}

// UpdateFillRecordStatus 更新填充记录的状态与错误详情
func (m *MySQL) UpdateFillRecordStatus(ctx context.Context, submissionUUID, status, errorDetail string) error {
	updates := map[string]interface{}{
		"status":       status,
		"error_detail": errorDetail,
	}
	result := m.db.WithContext(ctx).Model(&models.CVFillRecord{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("更新填充记录状态失败 (UUID:%s): %w", submissionUUID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("填充记录不存在 (UUID:%s): %w", submissionUUID, gorm.ErrRecordNotFound)
	}
	return nil
}

// CompleteFillRecord 将填充记录标记为完成并写入结果对象键
func (m *MySQL) CompleteFillRecord(ctx context.Context, submissionUUID, outputObjectKey string) error {
	updates := map[string]interface{}{
		"status":            constants.StatusCompleted,
		"output_object_key": outputObjectKey,
		"error_detail":      "",
	}
	result := m.db.WithContext(ctx).Model(&models.CVFillRecord{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("完成填充记录失败 (UUID:%s): %w", submissionUUID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("填充记录不存在 (UUID:%s): %w", submissionUUID, gorm.ErrRecordNotFound)
	}
	return nil
}

// GetFillRecord 查询填充记录
func (m *MySQL) GetFillRecord(ctx context.Context, submissionUUID string) (*models.CVFillRecord, error) {
	var record models.CVFillRecord
	err := m.db.WithContext(ctx).
		Where("submission_uuid = ?", submissionUUID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("填充记录不存在 (UUID:%s): %w", submissionUUID, err)
		}
		return nil, fmt.Errorf("查询填充记录失败 (UUID:%s): %w", submissionUUID, err)
	}
	return &record, nil
}
