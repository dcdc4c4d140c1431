package constants

// 填充记录状态
const (
	// StatusPending 已入队等待处理
	StatusPending = "PENDING"
	// StatusProcessing 正在填充
	StatusProcessing = "PROCESSING"
	// StatusCompleted 填充完成，结果已入库
	StatusCompleted = "COMPLETED"
	// StatusFailed 填充失败
	StatusFailed = "FAILED"
)

// 来源渠道
const (
	// SourceAPIUpload 通过HTTP接口同步提交
	SourceAPIUpload = "API_UPLOAD"
	// SourceAsyncQueue 通过异步队列提交
	SourceAsyncQueue = "ASYNC_QUEUE"
	// SourceCLI 通过命令行工具提交
	SourceCLI = "CLI"
)

// 内容类型
const (
	// ContentTypeDocx DOCX文档的MIME类型
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// ContentTypeJSON JSON的MIME类型
	ContentTypeJSON = "application/json"
)

// 对象存储路径前缀
const (
	// TemplateObjectPrefix 模板对象的键前缀
	TemplateObjectPrefix = "templates/"
	// OutputObjectPrefix 填充结果对象的键前缀
	OutputObjectPrefix = "outputs/"
)
