// Package filler 实现模板填充引擎：数据规整器 + 区域写入器的同步组合。
// 单次调用内无共享可变状态，多个填充操作可在各自独立的模板句柄上并发执行。
package filler

import (
	"cv-filler-go/internal/types"
)

// CVFiller 模板填充引擎
type CVFiller struct {
	normalizer *Normalizer
	writer     *SectionWriter
}

// NewCVFiller 创建填充引擎
// categories 为 nil 时使用默认技能分类表，layout 为零值时使用默认版式
func NewCVFiller(categories []types.SkillCategory, layout Layout) *CVFiller {
	if layout.MinRows == 0 {
		layout = DefaultLayout()
	}
	return &CVFiller{
		normalizer: NewNormalizer(categories),
		writer:     NewSectionWriter(layout),
	}
}

// Fill 用候选人数据填充模板，原地修改句柄
// 错误分类见 errors.go；引擎内部不做任何重试
func (f *CVFiller) Fill(record *types.CandidateRecord, tmpl TemplateHandle) error {
	normalized, err := f.normalizer.Normalize(record)
	if err != nil {
		return err
	}
	return f.writer.WriteSections(tmpl, normalized)
}

// Normalize 暴露规整步骤，供需要中间结果的调用方使用（如持久化分类结果）
func (f *CVFiller) Normalize(record *types.CandidateRecord) (*types.NormalizedRecord, error) {
	return f.normalizer.Normalize(record)
}
