package processor

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cv-filler-go/internal/config"
	"cv-filler-go/internal/constants"
	"cv-filler-go/internal/docxio"
	"cv-filler-go/internal/filler"
	"cv-filler-go/internal/logger"
	"cv-filler-go/internal/storage"
	"cv-filler-go/internal/storage/models"
	"cv-filler-go/internal/types"

	"github.com/google/uuid"
)

// 定义公共错误类型，用于整个服务
var (
	ErrStorageNotInit = errors.New("storage is not initialized") // 存储未初始化错误
	ErrResultNotFound = errors.New("fill result not found")      // 填充结果不存在
)

// FillResult 填充任务的查询结果
type FillResult struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
	DownloadURL    string `json:"download_url,omitempty"`
	ErrorDetail    string `json:"error_detail,omitempty"`
}

// CVFillService 定义简历填充服务的接口
type CVFillService interface {
	// FillSync 同步填充：接收模板和候选人数据，返回填充后的文档字节
	FillSync(ctx context.Context, templateData []byte, candidate *types.CandidateRecord, sourceChannel string) ([]byte, string, error)

	// SubmitAsync 异步提交：落库后发布消息，由消费者完成填充
	SubmitAsync(ctx context.Context, templateData []byte, candidate *types.CandidateRecord, sourceChannel string) (string, error)

	// GetFillResult 查询填充任务状态，完成时附带预签名下载URL
	GetFillResult(ctx context.Context, submissionUUID string) (*FillResult, error)

	// StartFillConsumer 启动异步填充消费者
	StartFillConsumer(ctx context.Context) (chan struct{}, error)
}

// cvFillServiceImpl 是CVFillService的实现
type cvFillServiceImpl struct {
	cfg     *config.Config
	storage *storage.Storage
	engine  *filler.CVFiller
}

// NewCVFillService 创建简历填充服务实例
func NewCVFillService(cfg *config.Config, store *storage.Storage) (CVFillService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}
	engine := filler.NewCVFiller(nil, layoutFromConfig(&cfg.Template))
	return &cvFillServiceImpl{
		cfg:     cfg,
		storage: store,
		engine:  engine,
	}, nil
}

// FillSync 同步填充流程：
//  1. 校验并解析模板
//  2. 填充各区域
//  3. 尽力持久化（模板去重存储、结果存储、MySQL记录、Redis缓存），
//     持久化失败只记日志，不影响同步返回结果
func (s *cvFillServiceImpl) FillSync(ctx context.Context, templateData []byte, candidate *types.CandidateRecord, sourceChannel string) ([]byte, string, error) {
	submissionUUID := uuid.NewString()

	tmpl, err := docxio.OpenTemplate(templateData)
	if err != nil {
		return nil, submissionUUID, err
	}

	if err := s.engine.Fill(candidate, tmpl); err != nil {
		return nil, submissionUUID, err
	}

	output, err := tmpl.Bytes()
	if err != nil {
		return nil, submissionUUID, fmt.Errorf("序列化填充结果失败: %w", err)
	}

	s.persistFillOutcome(ctx, submissionUUID, templateData, output, candidate, sourceChannel)
	return output, submissionUUID, nil
}

// persistFillOutcome 持久化同步填充的产物，所有步骤容错
func (s *cvFillServiceImpl) persistFillOutcome(ctx context.Context, submissionUUID string, templateData, output []byte, candidate *types.CandidateRecord, sourceChannel string) {
	if s.storage == nil {
		return
	}

	templateMD5 := calculateMD5(templateData)
	var templateObjectKey string
	if s.storage.MinIO != nil {
		templateObjectKey = s.storeTemplateDeduped(ctx, templateMD5, templateData)
	}

	var outputObjectKey string
	if s.storage.MinIO != nil {
		key, err := s.storage.MinIO.UploadFilledCV(ctx, submissionUUID, output)
		if err != nil {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("上传填充结果失败")
		} else {
			outputObjectKey = key
		}
	}

	if s.storage.MySQL != nil {
		record := s.buildFillRecord(submissionUUID, candidate, sourceChannel, templateObjectKey, templateMD5)
		record.OutputObjectKey = outputObjectKey
		record.Status = constants.StatusCompleted
		if err := s.storage.MySQL.CreateFillRecord(ctx, record); err != nil {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("写入填充记录失败")
		}
	}

	s.cacheFillResult(ctx, &storage.FillResultEntry{
		SubmissionUUID:  submissionUUID,
		Status:          constants.StatusCompleted,
		OutputObjectKey: outputObjectKey,
	})
}

// storeTemplateDeduped 按模板MD5去重存储模板，返回对象键（失败时为空）
func (s *cvFillServiceImpl) storeTemplateDeduped(ctx context.Context, templateMD5 string, templateData []byte) string {
	// 先查Redis映射，命中则跳过上传
	if s.storage.Redis != nil {
		key, err := s.storage.Redis.GetTemplateObjectKey(ctx, templateMD5)
		if err == nil {
			return key
		}
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn().Err(err).Str("md5", templateMD5).Msg("查询模板MD5映射失败")
		}
	}

	key, err := s.storage.MinIO.UploadTemplate(ctx, templateMD5, templateData)
	if err != nil {
		logger.Warn().Err(err).Str("md5", templateMD5).Msg("上传模板失败")
		return ""
	}

	if s.storage.Redis != nil {
		if err := s.storage.Redis.SetTemplateObjectKey(ctx, templateMD5, key); err != nil {
			// 映射写入失败只影响下次去重，不影响本次流程
			logger.Warn().Err(err).Str("md5", templateMD5).Msg("记录模板MD5映射失败")
		}
	}
	return key
}

// SubmitAsync 异步提交流程：模板先落对象存储，记录置为PENDING，再发布消息
func (s *cvFillServiceImpl) SubmitAsync(ctx context.Context, templateData []byte, candidate *types.CandidateRecord, sourceChannel string) (string, error) {
	if s.storage == nil || s.storage.MinIO == nil || s.storage.RabbitMQ == nil {
		return "", ErrStorageNotInit
	}

	// 提前做数据校验，坏请求不进队列
	if _, err := s.engine.Normalize(candidate); err != nil {
		return "", err
	}
	if _, err := docxio.OpenTemplate(templateData); err != nil {
		return "", err
	}

	submissionUUID := uuid.NewString()
	templateMD5 := calculateMD5(templateData)
	templateObjectKey := s.storeTemplateDeduped(ctx, templateMD5, templateData)
	if templateObjectKey == "" {
		return "", fmt.Errorf("模板存储失败")
	}

	if s.storage.MySQL != nil {
		record := s.buildFillRecord(submissionUUID, candidate, sourceChannel, templateObjectKey, templateMD5)
		record.Status = constants.StatusPending
		if err := s.storage.MySQL.CreateFillRecord(ctx, record); err != nil {
			return "", fmt.Errorf("写入填充记录失败: %w", err)
		}
	}

	message := storage.CVFillRequestMessage{
		SubmissionUUID:    submissionUUID,
		TemplateObjectKey: templateObjectKey,
		TemplateMD5:       templateMD5,
		Candidate:         candidate,
		SourceChannel:     sourceChannel,
	}

	err := s.storage.RabbitMQ.PublishJSON(
		ctx,
		s.cfg.RabbitMQ.FillEventsExchange,
		s.cfg.RabbitMQ.FillRoutingKey,
		message,
		true, // 持久化
	)
	if err != nil {
		s.markFillFailed(ctx, submissionUUID, fmt.Sprintf("发布消息失败: %v", err))
		return "", fmt.Errorf("发布填充请求消息失败: %w", err)
	}

	s.cacheFillResult(ctx, &storage.FillResultEntry{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusPending,
	})

	logger.Info().
		Str("submission_uuid", submissionUUID).
		Str("template_md5", templateMD5).
		Msg("异步填充请求已提交")
	return submissionUUID, nil
}

// GetFillResult 查询填充任务状态。
// 优先读Redis缓存，未命中时回源MySQL并回填缓存。
func (s *cvFillServiceImpl) GetFillResult(ctx context.Context, submissionUUID string) (*FillResult, error) {
	if s.storage == nil {
		return nil, ErrStorageNotInit
	}

	if s.storage.Redis != nil {
		entry, err := s.storage.Redis.GetFillResult(ctx, submissionUUID)
		if err == nil {
			return s.toFillResult(ctx, entry)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("读取结果缓存失败")
		}
	}

	if s.storage.MySQL == nil {
		return nil, ErrResultNotFound
	}

	record, err := s.storage.MySQL.GetFillRecord(ctx, submissionUUID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("查询填充记录失败: %w", err)
	}

	entry := &storage.FillResultEntry{
		SubmissionUUID:  record.SubmissionUUID,
		Status:          record.Status,
		OutputObjectKey: record.OutputObjectKey,
		ErrorDetail:     record.ErrorDetail,
	}
	s.cacheFillResult(ctx, entry)
	return s.toFillResult(ctx, entry)
}

// toFillResult 将缓存条目转换为对外结果，完成态附带预签名URL
func (s *cvFillServiceImpl) toFillResult(ctx context.Context, entry *storage.FillResultEntry) (*FillResult, error) {
	result := &FillResult{
		SubmissionUUID: entry.SubmissionUUID,
		Status:         entry.Status,
		ErrorDetail:    entry.ErrorDetail,
	}
	if entry.Status == constants.StatusCompleted && entry.OutputObjectKey != "" && s.storage.MinIO != nil {
		expiry := time.Duration(s.cfg.MinIO.PresignExpireMinutes) * time.Minute
		url, err := s.storage.MinIO.PresignedOutputURL(ctx, entry.OutputObjectKey, expiry)
		if err != nil {
			logger.Warn().Err(err).Str("object_key", entry.OutputObjectKey).Msg("生成下载URL失败")
		} else {
			result.DownloadURL = url
		}
	}
	return result, nil
}

// StartFillConsumer 按配置的worker数启动异步填充消费者
// 返回的停止通道关闭时所有worker一并停止
func (s *cvFillServiceImpl) StartFillConsumer(ctx context.Context) (chan struct{}, error) {
	if s.storage == nil || s.storage.RabbitMQ == nil {
		return nil, ErrStorageNotInit
	}

	handler := func(body []byte) bool {
		var message storage.CVFillRequestMessage
		if err := json.Unmarshal(body, &message); err != nil {
			// 消息体损坏，重试无意义，Ack丢弃
			logger.Error().Err(err).Msg("解析填充请求消息失败，丢弃消息")
			return true
		}
		return s.processFillMessage(ctx, &message)
	}

	workers := s.cfg.RabbitMQ.ConsumerWorkers
	if workers <= 0 {
		workers = 1
	}

	stops := make([]chan struct{}, 0, workers)
	for i := 0; i < workers; i++ {
		stop, err := s.storage.RabbitMQ.StartConsumer(
			s.cfg.RabbitMQ.FillRequestQueue,
			s.cfg.RabbitMQ.PrefetchCount,
			handler,
		)
		if err != nil {
			for _, st := range stops {
				close(st)
			}
			return nil, fmt.Errorf("启动第%d个填充消费者失败: %w", i+1, err)
		}
		stops = append(stops, stop)
	}

	master := make(chan struct{})
	go func() {
		<-master
		for _, st := range stops {
			close(st)
		}
	}()
	return master, nil
}

// processFillMessage 处理单条异步填充消息。
// 返回true表示Ack（包括业务性失败，已落库为FAILED），false表示Nack重试。
func (s *cvFillServiceImpl) processFillMessage(ctx context.Context, message *storage.CVFillRequestMessage) bool {
	log := logger.Logger.With().Str("submission_uuid", message.SubmissionUUID).Logger()

	if s.storage.MinIO == nil {
		// 没有对象存储无法取模板，留在队列里等组件恢复
		log.Error().Msg("对象存储不可用，消息重新入队")
		return false
	}

	s.updateFillStatus(ctx, message.SubmissionUUID, constants.StatusProcessing, "")

	templateData, err := s.storage.MinIO.GetTemplate(ctx, message.TemplateObjectKey)
	if err != nil {
		// 对象存储暂时不可用时重试
		log.Error().Err(err).Str("object_key", message.TemplateObjectKey).Msg("下载模板失败")
		return false
	}

	tmpl, err := docxio.OpenTemplate(templateData)
	if err != nil {
		log.Error().Err(err).Msg("模板解析失败")
		s.markFillFailed(ctx, message.SubmissionUUID, err.Error())
		return true
	}

	if err := s.engine.Fill(message.Candidate, tmpl); err != nil {
		// 数据或版式问题属于业务性失败，不重试
		log.Error().Err(err).Msg("填充失败")
		s.markFillFailed(ctx, message.SubmissionUUID, err.Error())
		return true
	}

	output, err := tmpl.Bytes()
	if err != nil {
		log.Error().Err(err).Msg("序列化填充结果失败")
		s.markFillFailed(ctx, message.SubmissionUUID, err.Error())
		return true
	}

	outputObjectKey, err := s.storage.MinIO.UploadFilledCV(ctx, message.SubmissionUUID, output)
	if err != nil {
		log.Error().Err(err).Msg("上传填充结果失败")
		return false
	}

	if s.storage.MySQL != nil {
		if err := s.storage.MySQL.CompleteFillRecord(ctx, message.SubmissionUUID, outputObjectKey); err != nil {
			log.Error().Err(err).Msg("更新填充记录失败")
			return false
		}
	}

	s.cacheFillResult(ctx, &storage.FillResultEntry{
		SubmissionUUID:  message.SubmissionUUID,
		Status:          constants.StatusCompleted,
		OutputObjectKey: outputObjectKey,
	})

	log.Info().Str("output_object_key", outputObjectKey).Msg("异步填充完成")
	return true
}

// updateFillStatus 更新MySQL记录状态，容错
func (s *cvFillServiceImpl) updateFillStatus(ctx context.Context, submissionUUID, status, errorDetail string) {
	if s.storage.MySQL == nil {
		return
	}
	if err := s.storage.MySQL.UpdateFillRecordStatus(ctx, submissionUUID, status, errorDetail); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Str("status", status).Msg("更新记录状态失败")
	}
}

// markFillFailed 将任务标记为失败并刷新缓存
func (s *cvFillServiceImpl) markFillFailed(ctx context.Context, submissionUUID, errorDetail string) {
	s.updateFillStatus(ctx, submissionUUID, constants.StatusFailed, errorDetail)
	s.cacheFillResult(ctx, &storage.FillResultEntry{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusFailed,
		ErrorDetail:    errorDetail,
	})
}

// cacheFillResult 写入结果缓存，容错
func (s *cvFillServiceImpl) cacheFillResult(ctx context.Context, entry *storage.FillResultEntry) {
	if s.storage == nil || s.storage.Redis == nil {
		return
	}
	expiry := time.Duration(s.cfg.MinIO.PresignExpireMinutes) * time.Minute
	if expiry <= 0 {
		expiry = time.Hour
	}
	if err := s.storage.Redis.SetFillResult(ctx, entry, expiry); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", entry.SubmissionUUID).Msg("写入结果缓存失败")
	}
}

// buildFillRecord 由候选人数据构建MySQL记录
func (s *cvFillServiceImpl) buildFillRecord(submissionUUID string, candidate *types.CandidateRecord, sourceChannel, templateObjectKey, templateMD5 string) *models.CVFillRecord {
	record := &models.CVFillRecord{
		SubmissionUUID:    submissionUUID,
		SourceChannel:     sourceChannel,
		TemplateObjectKey: templateObjectKey,
		TemplateMD5:       templateMD5,
	}
	if candidate == nil {
		return record
	}
	record.CandidateName = candidate.PersonalInfo.Name
	record.CertificatesJSON = models.ToJSON(candidate.Certificates)
	record.LanguagesJSON = models.ToJSON(candidate.Languages)

	// 归一化结果一并落库，便于后续检索分析
	if normalized, err := s.engine.Normalize(candidate); err == nil {
		record.SkillGroupsJSON = models.ToJSON(normalized.SkillGroups)
		record.IndustriesJSON = models.ToJSON(normalized.Industries)
	}
	return record
}

func calculateMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// layoutFromConfig 将配置中的版式坐标转换为填充引擎的版式定义
func layoutFromConfig(tc *config.TemplateConfig) filler.Layout {
	layout := filler.Layout{
		MinRows:    tc.MinRows,
		MinCols:    tc.MinCols,
		Header:     toCellAddrs(tc.Header),
		Summary:    toCellAddrs(tc.Summary),
		Education:  toCellAddrs(tc.Education),
		Experience: toCellAddrs(tc.Experience),
		Skills:     toCellAddrs(tc.Skills),
	}
	return layout
}

func toCellAddrs(cells []config.CellAddr) []filler.CellAddr {
	out := make([]filler.CellAddr, 0, len(cells))
	for _, c := range cells {
		out = append(out, filler.CellAddr{Row: c.Row, Col: c.Col})
	}
	return out
}
