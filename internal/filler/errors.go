package filler

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	// ErrValidation 输入数据校验失败，属于客户端输入错误
	ErrValidation = errors.New("候选人数据校验失败")
	// ErrTemplateStructure 模板结构不符合预期（缺少表格或行列不足），属于服务端资产配置错误
	ErrTemplateStructure = errors.New("模板结构不符合要求")
	// ErrRegionWrite 写入模板区域失败，包装底层文档库错误
	ErrRegionWrite = errors.New("写入模板区域失败")
)

// FillError 包含详细上下文的填充错误
type FillError struct {
	Op      string // 出错的操作，如 "validate", "write"
	Region  string // 相关的模板区域（可为空）
	Field   string // 相关的数据字段（可为空）
	BaseErr error
	Detail  string
}

func (e *FillError) Error() string {
	msg := e.BaseErr.Error()
	if e.Region != "" {
		msg = fmt.Sprintf("%s (区域:%s)", msg, e.Region)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (字段:%s)", msg, e.Field)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

func (e *FillError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误分类比较
func (e *FillError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewValidationError(field, detail string) error {
	return &FillError{
		Op:      "validate",
		Field:   field,
		BaseErr: ErrValidation,
		Detail:  detail,
	}
}

func NewTemplateStructureError(detail string) error {
	return &FillError{
		Op:      "inspect",
		BaseErr: ErrTemplateStructure,
		Detail:  detail,
	}
}

func NewRegionWriteError(region string, cause error) error {
	return &FillError{
		Op:      "write",
		Region:  region,
		BaseErr: ErrRegionWrite,
		Detail:  cause.Error(),
	}
}
