package types

// PersonalInfo 候选人的个人信息
// Additional 中可包含 "position" 等自由扩展字段
type PersonalInfo struct {
	Name       string            `json:"name"`
	Email      string            `json:"email,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Address    string            `json:"address,omitempty"`
	LinkedIn   string            `json:"linkedin,omitempty"`
	GitHub     string            `json:"github,omitempty"`
	Website    string            `json:"website,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// Education 教育经历条目，所有日期字段均为不透明文本，展示顺序即输入顺序
type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Project 项目经历条目
// Additional 中可包含 "industry" 行业标签
type Project struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Technologies []string          `json:"technologies"`
	StartDate    string            `json:"start_date,omitempty"`
	EndDate      string            `json:"end_date,omitempty"`
	Additional   map[string]string `json:"additional,omitempty"`
}

// Language 语言能力条目
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// CandidateRecord 候选人完整数据，由传输层解码后交给引擎
// 除 PersonalInfo.Name 外，所有集合字段都允许为空
type CandidateRecord struct {
	PersonalInfo      PersonalInfo `json:"personal_info"`
	Education         []Education  `json:"education"`
	Certificates      []string     `json:"certificates,omitempty"`
	SoftSkills        []string     `json:"soft_skills"`
	ProgrammingSkills []string     `json:"programming_skills"`
	Projects          []Project    `json:"projects"`
	Languages         []Language   `json:"languages,omitempty"`
	OtherInfo         string       `json:"other_info"`
}

// SkillGroup 技能分类结果中的一个分组
type SkillGroup struct {
	Category string
	Skills   []string
}

// NormalizedRecord 规整后的候选人数据，可直接渲染到模板区域
type NormalizedRecord struct {
	Personal    PersonalInfo
	Summary     string
	Education   []Education
	SkillGroups []SkillGroup // 按固定分类顺序排列，仅含非空分组
	Projects    []Project    // 按时间倒序排列
	Industries  []string     // 按首次出现顺序去重
}

// SkillCategory 技能分类配置项：标签 + 关键词集合
// 整个分类表在进程启动时构建一次，之后只读
type SkillCategory struct {
	Label    string
	Keywords []string
}

// OtherCategory 未命中任何分类的技能归入的兜底分组
const OtherCategory = "Other"

// DefaultSkillCategories 返回默认的技能分类表
// 顺序即优先级：技能归入第一个关键词命中的分类
func DefaultSkillCategories() []SkillCategory {
	return []SkillCategory{
		{Label: "Programming Language", Keywords: []string{"C#", "Java", "JavaScript", "TypeScript", "Python"}},
		{Label: "Backend Development", Keywords: []string{".NET Core", "Spring Boot", "Node.js", "SnapLogic", "MuleSoft", "Boomi"}},
		{Label: "Frontend Development", Keywords: []string{"Angular", "React", "Vue", "HTML", "CSS", "Bootstrap"}},
		{Label: "Cloud & DevOps", Keywords: []string{"AWS", "Azure", "Docker", "Kubernetes"}},
		{Label: "Database", Keywords: []string{"PostgreSQL", "MySQL", "MSSQL", "MongoDB", "Oracle"}},
		{Label: "Web Services", Keywords: []string{"REST", "SOAP", "GraphQL"}},
		{Label: "CI/CD", Keywords: []string{"Jenkins", "Azure DevOps", "CI/CD", "GitHub Actions"}},
		{Label: "Supporting Tools", Keywords: []string{"Git", "Jira", "Maven", "NPM", "SonarQube", "Swagger"}},
	}
}
