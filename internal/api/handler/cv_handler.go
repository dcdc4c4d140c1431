package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cv-filler-go/internal/constants"
	"cv-filler-go/internal/filler"
	"cv-filler-go/internal/logger"
	"cv-filler-go/internal/processor"
	"cv-filler-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// CVHandler 简历填充API处理器
type CVHandler struct {
	service processor.CVFillService
}

// NewCVHandler 创建简历填充API处理器
func NewCVHandler(service processor.CVFillService) *CVHandler {
	return &CVHandler{service: service}
}

// FillAsyncResponse 异步提交响应
type FillAsyncResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// FillCV 处理同步填充请求
// POST /api/v1/cv/fill
// FormData: template_file (file), cv_data (string, JSON), source_channel (string, optional)
// 成功时直接返回填充后的DOCX文件，响应头携带 X-Submission-UUID
func (h *CVHandler) FillCV(ctx context.Context, c *app.RequestContext) {
	templateData, candidate, sourceChannel, ok := h.parseFillRequest(c)
	if !ok {
		return
	}

	output, submissionUUID, err := h.service.FillSync(ctx, templateData, candidate, sourceChannel)
	if err != nil {
		h.writeFillError(c, err)
		return
	}

	c.Header("X-Submission-UUID", submissionUUID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.docx", submissionUUID))
	c.Data(consts.StatusOK, constants.ContentTypeDocx, output)
}

// FillCVAsync 处理异步填充请求
// POST /api/v1/cv/fill-async
// FormData同FillCV，返回submission_uuid供后续查询
func (h *CVHandler) FillCVAsync(ctx context.Context, c *app.RequestContext) {
	templateData, candidate, sourceChannel, ok := h.parseFillRequest(c)
	if !ok {
		return
	}

	submissionUUID, err := h.service.SubmitAsync(ctx, templateData, candidate, sourceChannel)
	if err != nil {
		h.writeFillError(c, err)
		return
	}

	c.JSON(consts.StatusAccepted, FillAsyncResponse{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusPending,
	})
}

// GetFillResult 查询异步填充结果
// GET /api/v1/cv/result/:uuid
func (h *CVHandler) GetFillResult(ctx context.Context, c *app.RequestContext) {
	submissionUUID := c.Param("uuid")
	if submissionUUID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "缺少uuid参数"})
		return
	}

	result, err := h.service.GetFillResult(ctx, submissionUUID)
	if err != nil {
		if errors.Is(err, processor.ErrResultNotFound) {
			c.JSON(consts.StatusNotFound, utils.H{"error": "填充任务不存在"})
			return
		}
		logger.Error().Err(err).Str("submission_uuid", submissionUUID).Msg("查询填充结果失败")
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "查询填充结果失败"})
		return
	}

	c.JSON(consts.StatusOK, result)
}

// Health 健康检查
// GET /api/v1/health
func (h *CVHandler) Health(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{"status": "ok"})
}

// parseFillRequest 解析multipart填充请求的公共部分。
// 解析失败时已写好响应，返回 ok=false。
func (h *CVHandler) parseFillRequest(c *app.RequestContext) ([]byte, *types.CandidateRecord, string, bool) {
	fileHeader, err := c.FormFile("template_file")
	if err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "无效的请求: 未找到 template_file"})
		return nil, nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Msg("打开上传模板失败")
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "处理上传文件失败"})
		return nil, nil, "", false
	}
	defer file.Close()

	templateData, err := io.ReadAll(file)
	if err != nil {
		logger.Error().Err(err).Msg("读取上传模板失败")
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "处理上传文件失败"})
		return nil, nil, "", false
	}

	cvData := c.PostForm("cv_data")
	if cvData == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "无效的请求: 未找到 cv_data"})
		return nil, nil, "", false
	}

	var candidate types.CandidateRecord
	if err := json.Unmarshal([]byte(cvData), &candidate); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": fmt.Sprintf("cv_data 不是合法的JSON: %v", err)})
		return nil, nil, "", false
	}

	sourceChannel := c.PostForm("source_channel")
	if sourceChannel == "" {
		sourceChannel = constants.SourceAPIUpload
	}

	return templateData, &candidate, sourceChannel, true
}

// writeFillError 按错误类型映射HTTP状态码：
// 数据校验错误返回400，模板结构和区域写入错误返回500
func (h *CVHandler) writeFillError(c *app.RequestContext, err error) {
	if errors.Is(err, filler.ErrValidation) {
		c.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
		return
	}
	logger.Error().Err(err).Msg("简历填充失败")
	c.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
}
