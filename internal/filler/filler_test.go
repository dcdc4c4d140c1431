package filler

import (
	"testing"

	"cv-filler-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCVFillerFill 验证完整的填充流程：规整 + 五个区域写入
func TestCVFillerFill(t *testing.T) {
	f := NewCVFiller(nil, Layout{})
	tmpl := newFakeTemplate(3, 3)

	record := &types.CandidateRecord{
		PersonalInfo: types.PersonalInfo{
			Name:       "Jane Doe",
			Additional: map[string]string{"position": "Integration Developer"},
		},
		OtherInfo:         "Summary text.",
		ProgrammingSkills: []string{"Python", "Docker", "PostgreSQL"},
		SoftSkills:        []string{"Mentoring"},
		Projects: []types.Project{
			{Name: "Old", StartDate: "March 2019", Additional: map[string]string{"industry": "Finance"}},
			{Name: "Ongoing", StartDate: "January 2023", EndDate: "current",
				Additional: map[string]string{"industry": "Tech"}},
		},
	}

	require.NoError(t, f.Fill(record, tmpl))

	// 头部
	assert.Equal(t, []string{"Jane Doe", "Integration Developer"}, tmpl.texts(0, 1))

	// 经历区域按时间倒序：Ongoing在前
	texts := tmpl.texts(2, 0)
	require.GreaterOrEqual(t, len(texts), 5)
	assert.Equal(t, "PROFESSIONAL EXPERIENCE", texts[0])
	assert.Equal(t, "Ongoing", texts[2])

	// 行业按首次出现顺序（输入顺序，而非排序后的项目顺序）
	eduTexts := tmpl.texts(1, 2)
	assert.Contains(t, eduTexts, "Finance")
	assert.Contains(t, eduTexts, "Tech")
	assert.Less(t, indexOf(eduTexts, "Finance"), indexOf(eduTexts, "Tech"))

	// 技能分类
	skillTexts := tmpl.texts(2, 2)
	assert.Equal(t, []string{
		"SKILLS",
		"Programming Language", "Python",
		"Cloud & DevOps", "Docker",
		"Database", "PostgreSQL",
		"Other", "Mentoring",
	}, skillTexts)
}

// TestCVFillerFillValidationError 验证规整失败时不触碰模板
func TestCVFillerFillValidationError(t *testing.T) {
	f := NewCVFiller(nil, Layout{})
	tmpl := newFakeTemplate(3, 3)

	err := f.Fill(&types.CandidateRecord{}, tmpl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, tmpl.cells, "校验失败不应写入任何内容")
}

// TestCVFillerZeroLayoutUsesDefault 验证零值版式回退到默认版式
func TestCVFillerZeroLayoutUsesDefault(t *testing.T) {
	f := NewCVFiller(nil, Layout{})

	// 2x2模板在默认版式(3x3)下应报结构错误
	err := f.Fill(&types.CandidateRecord{
		PersonalInfo: types.PersonalInfo{Name: "Jane"},
	}, newFakeTemplate(2, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateStructure)
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
