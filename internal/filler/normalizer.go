package filler

import (
	"sort"
	"strings"

	"cv-filler-go/internal/types"
)

// Normalizer 数据规整器：校验并重塑原始候选人数据
// 纯转换，除必填字段校验外所有异常输入都做降级处理而不报错
type Normalizer struct {
	categories []types.SkillCategory
}

// NewNormalizer 创建数据规整器
// categories 为 nil 时使用默认技能分类表
func NewNormalizer(categories []types.SkillCategory) *Normalizer {
	if categories == nil {
		categories = types.DefaultSkillCategories()
	}
	return &Normalizer{categories: categories}
}

// Normalize 规整候选人数据
// 唯一的失败路径是姓名缺失，返回 ErrValidation 类错误
func (n *Normalizer) Normalize(record *types.CandidateRecord) (*types.NormalizedRecord, error) {
	if record == nil {
		return nil, NewValidationError("record", "候选人数据不能为空")
	}
	if strings.TrimSpace(record.PersonalInfo.Name) == "" {
		return nil, NewValidationError("personal_info.name", "姓名不能为空")
	}

	return &types.NormalizedRecord{
		Personal:    record.PersonalInfo,
		Summary:     record.OtherInfo,
		Education:   record.Education,
		SkillGroups: n.CategorizeSkills(record.ProgrammingSkills, record.SoftSkills),
		Projects:    SortProjectsByRecency(record.Projects),
		Industries:  ExtractIndustries(record.Projects),
	}, nil
}

// CategorizeSkills 将编程技能与软技能的并集划分到固定分类中
// 技能归入第一个关键词命中的分类（不区分大小写的子串匹配），
// 未命中任何分类的归入 "Other"；结果只保留非空分组，按固定分类顺序排列
func (n *Normalizer) CategorizeSkills(programmingSkills, softSkills []string) []types.SkillGroup {
	buckets := make(map[string][]string, len(n.categories)+1)

	assign := func(skill string) {
		lower := strings.ToLower(skill)
		for _, cat := range n.categories {
			for _, kw := range cat.Keywords {
				if strings.Contains(lower, strings.ToLower(kw)) {
					buckets[cat.Label] = append(buckets[cat.Label], skill)
					return
				}
			}
		}
		buckets[types.OtherCategory] = append(buckets[types.OtherCategory], skill)
	}

	for _, skill := range programmingSkills {
		assign(skill)
	}
	for _, skill := range softSkills {
		assign(skill)
	}

	groups := make([]types.SkillGroup, 0, len(buckets))
	for _, cat := range n.categories {
		if members := buckets[cat.Label]; len(members) > 0 {
			groups = append(groups, types.SkillGroup{Category: cat.Label, Skills: members})
		}
	}
	if members := buckets[types.OtherCategory]; len(members) > 0 {
		groups = append(groups, types.SkillGroup{Category: types.OtherCategory, Skills: members})
	}
	return groups
}

// SortProjectsByRecency 返回按时间倒序排列的项目列表副本
// "current" 哨兵永远排最前；无法解析日期的条目排最后并保持输入相对顺序
func SortProjectsByRecency(projects []types.Project) []types.Project {
	type keyedProject struct {
		project types.Project
		key     DateKey
	}
	items := make([]keyedProject, len(projects))
	for i, p := range projects {
		items[i] = keyedProject{project: p, key: projectDateKey(p.StartDate, p.EndDate)}
	}

	// 稳定排序保证不可解析条目间的相对顺序
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key.Less(items[j].key)
	})

	sorted := make([]types.Project, len(items))
	for i, it := range items {
		sorted[i] = it.project
	}
	return sorted
}

// ExtractIndustries 收集各项目 additional.industry 的唯一值
// 按首次出现顺序排列，精确匹配去重；缺少该属性的项目不贡献任何值
func ExtractIndustries(projects []types.Project) []string {
	seen := make(map[string]bool)
	var industries []string
	for _, p := range projects {
		industry, ok := p.Additional["industry"]
		if !ok || industry == "" {
			continue
		}
		if seen[industry] {
			continue
		}
		seen[industry] = true
		industries = append(industries, industry)
	}
	return industries
}
