package filler

import (
	"testing"

	"cv-filler-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeRejectsMissingName 验证缺少姓名的数据会被拒绝
func TestNormalizeRejectsMissingName(t *testing.T) {
	n := NewNormalizer(nil)

	_, err := n.Normalize(nil)
	require.Error(t, err, "空记录应返回错误")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = n.Normalize(&types.CandidateRecord{})
	require.Error(t, err, "缺少姓名应返回错误")
	assert.ErrorIs(t, err, ErrValidation)

	// 纯空白姓名同样视为缺失
	_, err = n.Normalize(&types.CandidateRecord{
		PersonalInfo: types.PersonalInfo{Name: "   "},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

// TestNormalizeAcceptsMinimalRecord 验证只有姓名的最小记录可以通过规整
func TestNormalizeAcceptsMinimalRecord(t *testing.T) {
	n := NewNormalizer(nil)

	normalized, err := n.Normalize(&types.CandidateRecord{
		PersonalInfo: types.PersonalInfo{Name: "Jane Doe"},
	})
	require.NoError(t, err)
	require.NotNil(t, normalized)

	assert.Equal(t, "Jane Doe", normalized.Personal.Name)
	assert.Empty(t, normalized.SkillGroups)
	assert.Empty(t, normalized.Projects)
	assert.Empty(t, normalized.Industries)
}

// TestCategorizeSkillsBuckets 验证技能按关键词命中划分到固定分类
func TestCategorizeSkillsBuckets(t *testing.T) {
	n := NewNormalizer(nil)

	groups := n.CategorizeSkills(
		[]string{"Python", "Docker", "PostgreSQL"},
		nil,
	)
	require.Len(t, groups, 3)

	// 分组按固定分类顺序排列
	assert.Equal(t, "Programming Language", groups[0].Category)
	assert.Equal(t, []string{"Python"}, groups[0].Skills)
	assert.Equal(t, "Cloud & DevOps", groups[1].Category)
	assert.Equal(t, []string{"Docker"}, groups[1].Skills)
	assert.Equal(t, "Database", groups[2].Category)
	assert.Equal(t, []string{"PostgreSQL"}, groups[2].Skills)
}

// TestCategorizeSkillsCaseInsensitiveSubstring 验证匹配不区分大小写且支持子串命中
func TestCategorizeSkillsCaseInsensitiveSubstring(t *testing.T) {
	n := NewNormalizer(nil)

	groups := n.CategorizeSkills([]string{"python 3.11", "AZURE FUNCTIONS"}, nil)
	require.Len(t, groups, 2)

	assert.Equal(t, "Programming Language", groups[0].Category)
	assert.Equal(t, []string{"python 3.11"}, groups[0].Skills)
	assert.Equal(t, "Cloud & DevOps", groups[1].Category)
	assert.Equal(t, []string{"AZURE FUNCTIONS"}, groups[1].Skills)
}

// TestCategorizeSkillsFirstMatchWins 验证技能只归入第一个命中的分类
func TestCategorizeSkillsFirstMatchWins(t *testing.T) {
	n := NewNormalizer(nil)

	// "JavaScript" 同时是 Programming Language 关键词和 "Java" 的超串，
	// 应只出现在第一个命中的分类中
	groups := n.CategorizeSkills([]string{"JavaScript"}, nil)
	require.Len(t, groups, 1)
	assert.Equal(t, "Programming Language", groups[0].Category)
	assert.Equal(t, []string{"JavaScript"}, groups[0].Skills)
}

// TestCategorizeSkillsOtherCatchAll 验证未命中的技能归入Other且排在最后
func TestCategorizeSkillsOtherCatchAll(t *testing.T) {
	n := NewNormalizer(nil)

	groups := n.CategorizeSkills(
		[]string{"Python"},
		[]string{"Stakeholder Management", "Public Speaking"},
	)
	require.Len(t, groups, 2)

	assert.Equal(t, "Programming Language", groups[0].Category)
	assert.Equal(t, types.OtherCategory, groups[1].Category)
	assert.Equal(t, []string{"Stakeholder Management", "Public Speaking"}, groups[1].Skills)
}

// TestCategorizeSkillsOmitsEmptyGroups 验证没有技能命中的分类不出现在结果中
func TestCategorizeSkillsOmitsEmptyGroups(t *testing.T) {
	n := NewNormalizer(nil)

	groups := n.CategorizeSkills(nil, nil)
	assert.Empty(t, groups)

	groups = n.CategorizeSkills([]string{"Python"}, nil)
	require.Len(t, groups, 1)
	for _, g := range groups {
		assert.NotEmpty(t, g.Skills)
	}
}

// TestCategorizeSkillsCustomCategories 验证自定义分类表覆盖默认表
func TestCategorizeSkillsCustomCategories(t *testing.T) {
	n := NewNormalizer([]types.SkillCategory{
		{Label: "Messaging", Keywords: []string{"Kafka", "RabbitMQ"}},
	})

	groups := n.CategorizeSkills([]string{"Kafka", "Python"}, nil)
	require.Len(t, groups, 2)
	assert.Equal(t, "Messaging", groups[0].Category)
	// 自定义表没有 Programming Language 分类，Python落到Other
	assert.Equal(t, types.OtherCategory, groups[1].Category)
}

// TestSortProjectsByRecency 验证项目按时间倒序排列，current永远最前
func TestSortProjectsByRecency(t *testing.T) {
	projects := []types.Project{
		{Name: "Old", StartDate: "March 2019", EndDate: "July 2020"},
		{Name: "Ongoing", StartDate: "January 2023", EndDate: "current"},
		{Name: "Recent", StartDate: "June 2022", EndDate: "December 2022"},
	}

	sorted := SortProjectsByRecency(projects)
	require.Len(t, sorted, 3)
	assert.Equal(t, "Ongoing", sorted[0].Name)
	assert.Equal(t, "Recent", sorted[1].Name)
	assert.Equal(t, "Old", sorted[2].Name)

	// 输入切片不被修改
	assert.Equal(t, "Old", projects[0].Name)
}

// TestSortProjectsCurrentStartDate 验证开始日期为current同样视为进行中
func TestSortProjectsCurrentStartDate(t *testing.T) {
	projects := []types.Project{
		{Name: "Done", StartDate: "May 2024", EndDate: "August 2024"},
		{Name: "JustStarted", StartDate: "Current"},
	}

	sorted := SortProjectsByRecency(projects)
	assert.Equal(t, "JustStarted", sorted[0].Name)
	assert.Equal(t, "Done", sorted[1].Name)
}

// TestSortProjectsUnparsableDatesLastAndStable 验证无法解析的日期排最后且保持输入顺序
func TestSortProjectsUnparsableDatesLastAndStable(t *testing.T) {
	projects := []types.Project{
		{Name: "BadA", StartDate: "sometime"},
		{Name: "Good", StartDate: "April 2021"},
		{Name: "BadB", StartDate: ""},
		{Name: "BadC", StartDate: "13/2020"},
	}

	sorted := SortProjectsByRecency(projects)
	require.Len(t, sorted, 4)
	assert.Equal(t, "Good", sorted[0].Name)
	assert.Equal(t, "BadA", sorted[1].Name)
	assert.Equal(t, "BadB", sorted[2].Name)
	assert.Equal(t, "BadC", sorted[3].Name)
}

// TestSortProjectsYearOnlyDates 验证纯年份日期按当年1月参与比较
func TestSortProjectsYearOnlyDates(t *testing.T) {
	projects := []types.Project{
		{Name: "YearOnly", StartDate: "2022"},
		{Name: "FebSameYear", StartDate: "February 2022"},
	}

	sorted := SortProjectsByRecency(projects)
	assert.Equal(t, "FebSameYear", sorted[0].Name)
	assert.Equal(t, "YearOnly", sorted[1].Name)
}

// TestExtractIndustries 验证行业标签按首次出现顺序去重
func TestExtractIndustries(t *testing.T) {
	projects := []types.Project{
		{Name: "A", Additional: map[string]string{"industry": "Finance"}},
		{Name: "B", Additional: map[string]string{"industry": "Tech"}},
		{Name: "C", Additional: map[string]string{"industry": "Finance"}},
		{Name: "D"}, // 无行业标签
		{Name: "E", Additional: map[string]string{"industry": ""}},
	}

	industries := ExtractIndustries(projects)
	assert.Equal(t, []string{"Finance", "Tech"}, industries)
}

// TestExtractIndustriesExactMatch 验证去重使用精确匹配，大小写不同视为不同行业
func TestExtractIndustriesExactMatch(t *testing.T) {
	projects := []types.Project{
		{Name: "A", Additional: map[string]string{"industry": "Finance"}},
		{Name: "B", Additional: map[string]string{"industry": "finance"}},
	}

	industries := ExtractIndustries(projects)
	assert.Equal(t, []string{"Finance", "finance"}, industries)
}
