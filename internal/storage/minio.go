package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"cv-filler-go/internal/config"
	"cv-filler-go/internal/constants"
	"cv-filler-go/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// UploadTemplate 上传模板文件，对象键由模板MD5决定（相同模板只存一份）
	UploadTemplate(ctx context.Context, templateMD5 string, data []byte) (string, error)

	// GetTemplate 下载模板文件
	GetTemplate(ctx context.Context, objectKey string) ([]byte, error)

	// UploadFilledCV 上传填充完成的文档
	UploadFilledCV(ctx context.Context, submissionUUID string, data []byte) (string, error)

	// GetFilledCV 下载填充完成的文档
	GetFilledCV(ctx context.Context, objectKey string) ([]byte, error)

	// PresignedOutputURL 获取填充结果的预签名下载URL
	PresignedOutputURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能
type MinIO struct {
	client          *minio.Client
	cfg             *config.MinIOConfig
	templatesBucket string
	outputsBucket   string
}

// NewMinIO 创建MinIO客户端，确保存储桶存在并设置生命周期规则
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client:          client,
		cfg:             cfg,
		templatesBucket: cfg.TemplatesBucket,
		outputsBucket:   cfg.OutputsBucket,
	}

	// 确保存储桶存在
	if err := m.ensureBucketExists(m.templatesBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保模板存储桶 %s 存在失败: %w", m.templatesBucket, err)
	}
	if err := m.ensureBucketExists(m.outputsBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保结果存储桶 %s 存在失败: %w", m.outputsBucket, err)
	}

	// 填充结果按天数过期，模板长期保留
	if cfg.OutputExpireDays > 0 {
		if err := m.setupBucketLifecycle(context.Background(), m.outputsBucket, "expire-outputs", cfg.OutputExpireDays); err != nil {
			// 生命周期规则失败不阻断启动
			logger.Warn().Err(err).Str("bucket", m.outputsBucket).Msg("设置结果存储桶生命周期失败")
		}
	}

	return m, nil
}

// ensureBucketExists 确保存储桶存在
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	exists, err := m.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		if err := m.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
	}
	return nil
}

// setupBucketLifecycle 为指定存储桶设置过期规则
func (m *MinIO) setupBucketLifecycle(ctx context.Context, bucketName, ruleID string, expiryDays int) error {
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:     ruleID,
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expiryDays),
			},
		},
	}
	return m.client.SetBucketLifecycle(ctx, bucketName, lc)
}

// UploadTemplate 上传模板文件到模板存储桶
// 对象键形如 templates/{md5}.docx，重复上传同一模板会覆盖同一对象
func (m *MinIO) UploadTemplate(ctx context.Context, templateMD5 string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("%s%s.docx", constants.TemplateObjectPrefix, templateMD5)
	_, err := m.client.PutObject(ctx, m.templatesBucket, objectKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: constants.ContentTypeDocx})
	if err != nil {
		return "", fmt.Errorf("上传模板 %s/%s 失败: %w", m.templatesBucket, objectKey, err)
	}
	return objectKey, nil
}

// GetTemplate 从模板存储桶下载模板
func (m *MinIO) GetTemplate(ctx context.Context, objectKey string) ([]byte, error) {
	return m.downloadObject(ctx, m.templatesBucket, objectKey)
}

// UploadFilledCV 上传填充完成的文档到结果存储桶
// 对象键形如 outputs/{submissionUUID}.docx
func (m *MinIO) UploadFilledCV(ctx context.Context, submissionUUID string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("%s%s.docx", constants.OutputObjectPrefix, submissionUUID)
	_, err := m.client.PutObject(ctx, m.outputsBucket, objectKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: constants.ContentTypeDocx})
	if err != nil {
		return "", fmt.Errorf("上传填充结果 %s/%s 失败: %w", m.outputsBucket, objectKey, err)
	}
	return objectKey, nil
}

// GetFilledCV 从结果存储桶下载填充完成的文档
func (m *MinIO) GetFilledCV(ctx context.Context, objectKey string) ([]byte, error) {
	return m.downloadObject(ctx, m.outputsBucket, objectKey)
}

// PresignedOutputURL 获取填充结果的预签名下载URL
func (m *MinIO) PresignedOutputURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := m.client.PresignedGetObject(ctx, m.outputsBucket, objectKey, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("生成预签名URL失败 (%s/%s): %w", m.outputsBucket, objectKey, err)
	}
	return presignedURL.String(), nil
}

// downloadObject 下载对象并读出全部内容
func (m *MinIO) downloadObject(ctx context.Context, bucketName, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 失败: %w", bucketName, objectKey, err)
	}
	defer obj.Close()

	// Stat确认对象存在且可访问
	if _, err := obj.Stat(); err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 状态失败: %w", bucketName, objectKey, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s/%s 内容失败: %w", bucketName, objectKey, err)
	}
	return data, nil
}
