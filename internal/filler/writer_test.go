package filler

import (
	"errors"
	"fmt"
	"testing"

	"cv-filler-go/internal/docxio"
	"cv-filler-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeParagraph 内存中的一个段落写入记录
type fakeParagraph struct {
	Text  string
	Style docxio.Style
}

// fakeTemplate 内存模板句柄，按坐标记录写入的段落
type fakeTemplate struct {
	rows, cols int
	cells      map[[2]int][]fakeParagraph
	failCell   *[2]int // 设置后对应单元格的写入会失败
}

func newFakeTemplate(rows, cols int) *fakeTemplate {
	return &fakeTemplate{
		rows:  rows,
		cols:  cols,
		cells: make(map[[2]int][]fakeParagraph),
	}
}

func (f *fakeTemplate) Rows() int        { return f.rows }
func (f *fakeTemplate) Cols(row int) int { return f.cols }

func (f *fakeTemplate) ClearCell(row, col int) error {
	delete(f.cells, [2]int{row, col})
	return nil
}

func (f *fakeTemplate) AddStyledParagraph(row, col int, text string, style docxio.Style) error {
	key := [2]int{row, col}
	if f.failCell != nil && *f.failCell == key {
		return fmt.Errorf("模拟单元格写入失败")
	}
	f.cells[key] = append(f.cells[key], fakeParagraph{Text: text, Style: style})
	return nil
}

// paragraphs 返回指定单元格的段落序列
func (f *fakeTemplate) paragraphs(row, col int) []fakeParagraph {
	return f.cells[[2]int{row, col}]
}

// texts 返回指定单元格的段落文本序列
func (f *fakeTemplate) texts(row, col int) []string {
	paras := f.paragraphs(row, col)
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.Text
	}
	return out
}

func sampleRecord() *types.NormalizedRecord {
	return &types.NormalizedRecord{
		Personal: types.PersonalInfo{
			Name:       "Jane Doe",
			Additional: map[string]string{"position": "Integration Developer"},
		},
		Summary: "Experienced integration developer.",
		Education: []types.Education{
			{Institution: "Example University", Degree: "BSc", FieldOfStudy: "Computer Science",
				StartDate: "2015", EndDate: "2019"},
		},
		SkillGroups: []types.SkillGroup{
			{Category: "Programming Language", Skills: []string{"Python", "Java"}},
			{Category: "Database", Skills: []string{"PostgreSQL"}},
		},
		Projects: []types.Project{
			{Name: "Billing Platform", Description: "Rebuilt the billing pipeline.",
				Technologies: []string{"Python", "PostgreSQL"},
				StartDate:    "January 2023", EndDate: "current"},
		},
		Industries: []string{"Finance", "Tech"},
	}
}

// TestWriteSectionsHeader 验证头部区域渲染姓名与职位
func TestWriteSectionsHeader(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)

	require.NoError(t, w.WriteSections(tmpl, sampleRecord()))

	paras := tmpl.paragraphs(0, 1)
	require.Len(t, paras, 2)
	assert.Equal(t, "Jane Doe", paras[0].Text)
	assert.True(t, paras[0].Style.Bold)
	assert.Equal(t, docxio.SizeName, paras[0].Style.Size)
	assert.Equal(t, "Integration Developer", paras[1].Text)
	assert.False(t, paras[1].Style.Bold)
	assert.Equal(t, docxio.SizeTitle, paras[1].Style.Size)
}

// TestWriteSectionsHeaderWithoutPosition 验证缺少position时头部只渲染姓名
func TestWriteSectionsHeaderWithoutPosition(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)

	record := sampleRecord()
	record.Personal.Additional = nil
	require.NoError(t, w.WriteSections(tmpl, record))

	paras := tmpl.paragraphs(0, 1)
	require.Len(t, paras, 1)
	assert.Equal(t, "Jane Doe", paras[0].Text)
}

// TestWriteSectionsSummaryMultiCell 验证摘要写入区域的全部单元格
func TestWriteSectionsSummaryMultiCell(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)

	require.NoError(t, w.WriteSections(tmpl, sampleRecord()))

	for _, addr := range DefaultLayout().Summary {
		paras := tmpl.paragraphs(addr.Row, addr.Col)
		require.Len(t, paras, 2, "单元格(%d,%d)", addr.Row, addr.Col)
		assert.Equal(t, "SUMMARY", paras[0].Text)
		assert.True(t, paras[0].Style.Bold)
		assert.Equal(t, "C00000", paras[0].Style.Color)
		assert.Equal(t, "Experienced integration developer.", paras[1].Text)
	}
}

// TestWriteSectionsEmptySummaryStillRendersLabel 验证摘要为空时标签仍然写出
func TestWriteSectionsEmptySummaryStillRendersLabel(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)

	record := sampleRecord()
	record.Summary = ""
	require.NoError(t, w.WriteSections(tmpl, record))

	paras := tmpl.paragraphs(1, 0)
	require.Len(t, paras, 2)
	assert.Equal(t, "SUMMARY", paras[0].Text)
	assert.Equal(t, "", paras[1].Text)
}

// TestWriteSectionsEducationAndIndustry 验证教育+行业区域的渲染顺序
func TestWriteSectionsEducationAndIndustry(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)

	require.NoError(t, w.WriteSections(tmpl, sampleRecord()))

	texts := tmpl.texts(1, 2)
	assert.Equal(t, []string{
		"EDUCATION",
		"BSc in Computer Science - Example University",
		"2015 - 2019",
		"", "",
		"INDUSTRY KNOWLEDGE",
		"Finance",
		"Tech",
	}, texts)
}

// TestWriteSectionsLabelsRenderWithEmptyData 验证教育和行业为空时两个标签依然渲染
func TestWriteSectionsLabelsRenderWithEmptyData(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)

	record := sampleRecord()
	record.Education = nil
	record.Industries = nil
	require.NoError(t, w.WriteSections(tmpl, record))

	texts := tmpl.texts(1, 2)
	assert.Equal(t, []string{"EDUCATION", "", "", "INDUSTRY KNOWLEDGE"}, texts)
}

// TestWriteSectionsExperience 验证经历区域的项目渲染
func TestWriteSectionsExperience(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)

	require.NoError(t, w.WriteSections(tmpl, sampleRecord()))

	paras := tmpl.paragraphs(2, 0)
	require.Len(t, paras, 5)
	assert.Equal(t, "PROFESSIONAL EXPERIENCE", paras[0].Text)
	assert.Equal(t, "", paras[1].Text)
	assert.Equal(t, "Billing Platform", paras[2].Text)
	assert.True(t, paras[2].Style.Bold)
	assert.Equal(t, "Rebuilt the billing pipeline.", paras[3].Text)
	assert.Equal(t, "Python, PostgreSQL | January 2023 - current", paras[4].Text)
	assert.True(t, paras[4].Style.Italic)
	assert.Equal(t, docxio.SizeMeta, paras[4].Style.Size)
}

// TestWriteSectionsSkills 验证技能区域按分类渲染为标签行+成员行
func TestWriteSectionsSkills(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)

	require.NoError(t, w.WriteSections(tmpl, sampleRecord()))

	paras := tmpl.paragraphs(2, 2)
	require.Len(t, paras, 5)
	assert.Equal(t, "SKILLS", paras[0].Text)
	assert.Equal(t, "Programming Language", paras[1].Text)
	assert.True(t, paras[1].Style.Bold)
	assert.Equal(t, "Python, Java", paras[2].Text)
	assert.Equal(t, "Database", paras[3].Text)
	assert.Equal(t, "PostgreSQL", paras[4].Text)
}

// TestWriteSectionsIdempotent 验证重复写入同一句柄结果相同而非追加
func TestWriteSectionsIdempotent(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)
	record := sampleRecord()

	require.NoError(t, w.WriteSections(tmpl, record))
	first := make(map[[2]int][]fakeParagraph, len(tmpl.cells))
	for k, v := range tmpl.cells {
		first[k] = append([]fakeParagraph(nil), v...)
	}

	require.NoError(t, w.WriteSections(tmpl, record))
	assert.Equal(t, first, tmpl.cells, "第二次填充应覆盖而非追加")
}

// TestWriteSectionsStructureError 验证行列不足返回模板结构错误
func TestWriteSectionsStructureError(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())

	err := w.WriteSections(newFakeTemplate(2, 3), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateStructure)

	err = w.WriteSections(newFakeTemplate(3, 2), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateStructure)
}

// TestWriteSectionsRegionWriteError 验证单元格写入失败被包装为区域写入错误
func TestWriteSectionsRegionWriteError(t *testing.T) {
	w := NewSectionWriter(DefaultLayout())
	tmpl := newFakeTemplate(3, 3)
	tmpl.failCell = &[2]int{1, 2} // 教育区域的单元格

	err := w.WriteSections(tmpl, sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegionWrite)

	var fillErr *FillError
	require.True(t, errors.As(err, &fillErr))
	assert.Equal(t, RegionEducation, fillErr.Region)
}
