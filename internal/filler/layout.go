package filler

// 区域名称，用于日志与错误上下文
const (
	RegionHeader     = "header"
	RegionSummary    = "summary"
	RegionEducation  = "education_industry"
	RegionExperience = "experience"
	RegionSkills     = "skills"
)

// CellAddr 模板表格中的单元格坐标
type CellAddr struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Layout 固定版式：语义区域到单元格坐标的映射
// 一个区域可以对应多个单元格（模板中视觉上合并的单元格写入相同内容）
// 集中成显式配置结构，换模板版式只需改配置而非改代码
type Layout struct {
	MinRows int `yaml:"min_rows"`
	MinCols int `yaml:"min_cols"`

	Header     []CellAddr `yaml:"header"`
	Summary    []CellAddr `yaml:"summary"`
	Education  []CellAddr `yaml:"education"`
	Experience []CellAddr `yaml:"experience"`
	Skills     []CellAddr `yaml:"skills"`
}

// DefaultLayout 返回标准CV模板的版式：3行3列的单表
func DefaultLayout() Layout {
	return Layout{
		MinRows:    3,
		MinCols:    3,
		Header:     []CellAddr{{Row: 0, Col: 1}},
		Summary:    []CellAddr{{Row: 1, Col: 0}, {Row: 1, Col: 1}},
		Education:  []CellAddr{{Row: 1, Col: 2}},
		Experience: []CellAddr{{Row: 2, Col: 0}, {Row: 2, Col: 1}},
		Skills:     []CellAddr{{Row: 2, Col: 2}},
	}
}
