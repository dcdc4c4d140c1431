package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// TemplateModulePrefix 模板模块
	TemplateModulePrefix = "template"
	// FillModulePrefix 填充模块
	FillModulePrefix = "fill"

	// EntityMD5ToKey MD5到对象键的映射实体
	EntityMD5ToKey = "md5_to_key"
	// EntityResult 填充结果实体
	EntityResult = "result"

	// KeyTemplateMD5ToObjectKey 模板MD5到MinIO对象键的映射 (STRING)
	// 格式: app:template:md5_to_key:{md5}
	KeyTemplateMD5ToObjectKey = AppPrefix + ":" + TemplateModulePrefix + ":" + EntityMD5ToKey + ":%s"

	// KeyFillResult 填充结果缓存 (STRING, JSON)
	// 格式: app:fill:result:{submissionUUID}
	KeyFillResult = AppPrefix + ":" + FillModulePrefix + ":" + EntityResult + ":%s"
)
