package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// CVFillRecord 填充记录表：每次填充操作的元数据与结果位置
type CVFillRecord struct {
	SubmissionUUID    string         `gorm:"type:char(36);primaryKey"`
	CandidateName     string         `gorm:"type:varchar(255);not null;index:idx_fill_candidate_name"`
	SourceChannel     string         `gorm:"type:varchar(100)"`
	TemplateObjectKey string         `gorm:"type:varchar(1024)"`
	TemplateMD5       string         `gorm:"type:char(32);index:idx_fill_template_md5"`
	OutputObjectKey   string         `gorm:"type:varchar(1024)"`
	Status            string         `gorm:"type:varchar(50);not null;index:idx_fill_status"`
	ErrorDetail       string         `gorm:"type:text"`
	SkillGroupsJSON   datatypes.JSON `gorm:"type:json"` // 分类后的技能分组
	IndustriesJSON    datatypes.JSON `gorm:"type:json"` // 提取出的行业列表
	LanguagesJSON     datatypes.JSON `gorm:"type:json"` // 语言能力（模板无对应区域，仅存档）
	CertificatesJSON  datatypes.JSON `gorm:"type:json"` // 证书列表（模板无对应区域，仅存档）
	CreatedAt         time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt         time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (CVFillRecord) TableName() string {
	return "cv_fill_records"
}

// ToJSON 辅助函数: 将任意值序列化为JSON列，失败时退化为空数组
func ToJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("[]")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
