package filler

import (
	"fmt"
	"strings"

	"cv-filler-go/internal/docxio"
	"cv-filler-go/internal/types"
)

// labelColor 区域标签的颜色（模板固有的深红色）
const labelColor = "C00000"

// TemplateHandle 区域写入器依赖的文档原语
// 由 docxio 包的具体模板句柄实现，测试中可用内存实现替代
type TemplateHandle interface {
	Rows() int
	Cols(row int) int
	ClearCell(row, col int) error
	AddStyledParagraph(row, col int, text string, style docxio.Style) error
}

// SectionWriter 区域写入器：把规整后的数据按固定坐标写入模板表格
// 每个区域先清空再写入，重复填充同一句柄得到相同结果而非追加
type SectionWriter struct {
	layout Layout
}

// NewSectionWriter 创建区域写入器
func NewSectionWriter(layout Layout) *SectionWriter {
	return &SectionWriter{layout: layout}
}

// WriteSections 将规整后的数据写入模板的全部五个区域
// 模板行列不足返回 ErrTemplateStructure 类错误；
// 单元格写入失败返回 ErrRegionWrite 类错误并包装底层原因
func (w *SectionWriter) WriteSections(tmpl TemplateHandle, record *types.NormalizedRecord) error {
	if err := w.checkStructure(tmpl); err != nil {
		return err
	}

	if err := w.writeHeader(tmpl, record); err != nil {
		return err
	}
	if err := w.writeSummary(tmpl, record.Summary); err != nil {
		return err
	}
	if err := w.writeEducationAndIndustry(tmpl, record.Education, record.Industries); err != nil {
		return err
	}
	if err := w.writeExperience(tmpl, record.Projects); err != nil {
		return err
	}
	return w.writeSkills(tmpl, record.SkillGroups)
}

// checkStructure 校验模板表格满足最小行列数
func (w *SectionWriter) checkStructure(tmpl TemplateHandle) error {
	if tmpl.Rows() < w.layout.MinRows {
		return NewTemplateStructureError(
			fmt.Sprintf("表格行数不足: 需要%d行, 实际%d行", w.layout.MinRows, tmpl.Rows()))
	}
	for row := 0; row < w.layout.MinRows; row++ {
		if tmpl.Cols(row) < w.layout.MinCols {
			return NewTemplateStructureError(
				fmt.Sprintf("表格第%d行列数不足: 需要%d列, 实际%d列", row, w.layout.MinCols, tmpl.Cols(row)))
		}
	}
	return nil
}

// cellFiller 对区域内的每个单元格执行相同的写入序列
type cellFiller func(row, col int) error

func (w *SectionWriter) fillRegion(tmpl TemplateHandle, region string, cells []CellAddr, fill cellFiller) error {
	for _, addr := range cells {
		if err := tmpl.ClearCell(addr.Row, addr.Col); err != nil {
			return NewRegionWriteError(region, err)
		}
		if err := fill(addr.Row, addr.Col); err != nil {
			return NewRegionWriteError(region, err)
		}
	}
	return nil
}

// writeHeader 头部区域：姓名（加粗大号）+ 职位（常规小号）
// 职位取自 personal_info.additional["position"]，缺失时只渲染姓名
func (w *SectionWriter) writeHeader(tmpl TemplateHandle, record *types.NormalizedRecord) error {
	position := record.Personal.Additional["position"]

	return w.fillRegion(tmpl, RegionHeader, w.layout.Header, func(row, col int) error {
		if err := tmpl.AddStyledParagraph(row, col, record.Personal.Name,
			docxio.Style{Bold: true, Size: docxio.SizeName}); err != nil {
			return err
		}
		if position == "" {
			return nil
		}
		return tmpl.AddStyledParagraph(row, col, position, docxio.Style{Size: docxio.SizeTitle})
	})
}

// writeSummary 摘要区域：SUMMARY标签 + 单段正文
// 摘要为空时标签下渲染空正文段落
func (w *SectionWriter) writeSummary(tmpl TemplateHandle, summary string) error {
	return w.fillRegion(tmpl, RegionSummary, w.layout.Summary, func(row, col int) error {
		if err := w.writeLabel(tmpl, row, col, "SUMMARY"); err != nil {
			return err
		}
		return tmpl.AddStyledParagraph(row, col, summary, docxio.Style{Size: docxio.SizeBody})
	})
}

// writeEducationAndIndustry 教育+行业区域
// 教育条目按输入顺序渲染（不重排），行业按首次出现顺序逐行渲染；
// 两个标签总是写出，即使对应内容为空
func (w *SectionWriter) writeEducationAndIndustry(tmpl TemplateHandle, education []types.Education, industries []string) error {
	return w.fillRegion(tmpl, RegionEducation, w.layout.Education, func(row, col int) error {
		if err := w.writeLabel(tmpl, row, col, "EDUCATION"); err != nil {
			return err
		}
		for _, edu := range education {
			line := fmt.Sprintf("%s in %s - %s", edu.Degree, edu.FieldOfStudy, edu.Institution)
			if err := tmpl.AddStyledParagraph(row, col, line, docxio.Style{Size: docxio.SizeBody}); err != nil {
				return err
			}
			if period := formatDateRange(edu.StartDate, edu.EndDate); period != "" {
				if err := tmpl.AddStyledParagraph(row, col, period, docxio.Style{Size: docxio.SizeBody}); err != nil {
					return err
				}
			}
		}

		// 两个空段落作为子区域间隔
		for i := 0; i < 2; i++ {
			if err := tmpl.AddStyledParagraph(row, col, "", docxio.Style{}); err != nil {
				return err
			}
		}

		if err := w.writeLabel(tmpl, row, col, "INDUSTRY KNOWLEDGE"); err != nil {
			return err
		}
		for _, industry := range industries {
			if err := tmpl.AddStyledParagraph(row, col, industry, docxio.Style{Size: docxio.SizeBody}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeExperience 经历区域：按时间倒序渲染项目
// 每个项目：空行分隔 + 名称（加粗）+ 描述（常规）+ 元信息行（斜体最小号）
func (w *SectionWriter) writeExperience(tmpl TemplateHandle, projects []types.Project) error {
	return w.fillRegion(tmpl, RegionExperience, w.layout.Experience, func(row, col int) error {
		if err := w.writeLabel(tmpl, row, col, "PROFESSIONAL EXPERIENCE"); err != nil {
			return err
		}
		for _, proj := range projects {
			if err := tmpl.AddStyledParagraph(row, col, "", docxio.Style{}); err != nil {
				return err
			}
			if err := tmpl.AddStyledParagraph(row, col, proj.Name,
				docxio.Style{Bold: true, Size: docxio.SizeBody}); err != nil {
				return err
			}
			if err := tmpl.AddStyledParagraph(row, col, proj.Description,
				docxio.Style{Size: docxio.SizeBody}); err != nil {
				return err
			}
			if meta := formatProjectMeta(proj); meta != "" {
				if err := tmpl.AddStyledParagraph(row, col, meta,
					docxio.Style{Italic: true, Size: docxio.SizeMeta}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeSkills 技能区域：按固定分类顺序渲染
// 每个非空分类渲染为加粗标签行 + 常规成员行；空分类完全省略
func (w *SectionWriter) writeSkills(tmpl TemplateHandle, groups []types.SkillGroup) error {
	return w.fillRegion(tmpl, RegionSkills, w.layout.Skills, func(row, col int) error {
		if err := w.writeLabel(tmpl, row, col, "SKILLS"); err != nil {
			return err
		}
		for _, group := range groups {
			if err := tmpl.AddStyledParagraph(row, col, group.Category,
				docxio.Style{Bold: true, Size: docxio.SizeBody}); err != nil {
				return err
			}
			if err := tmpl.AddStyledParagraph(row, col, strings.Join(group.Skills, ", "),
				docxio.Style{Size: docxio.SizeBody}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeLabel 写入区域标签（加粗、10pt、深红色）
func (w *SectionWriter) writeLabel(tmpl TemplateHandle, row, col int, label string) error {
	return tmpl.AddStyledParagraph(row, col, label,
		docxio.Style{Bold: true, Size: docxio.SizeLabel, Color: labelColor})
}

// formatDateRange 拼接日期区间，两端都为空时返回空串
func formatDateRange(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

// formatProjectMeta 项目元信息行：逗号连接的技术标签 + 日期区间
func formatProjectMeta(proj types.Project) string {
	techs := strings.Join(proj.Technologies, ", ")
	dates := formatDateRange(proj.StartDate, proj.EndDate)
	switch {
	case techs == "" && dates == "":
		return ""
	case dates == "":
		return techs
	case techs == "":
		return dates
	default:
		return techs + " | " + dates
	}
}
