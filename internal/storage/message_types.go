package storage

import "cv-filler-go/internal/types"

// CVFillRequestMessage 异步填充请求消息体。
// 模板已在接收请求时写入对象存储，消息只携带对象键。
type CVFillRequestMessage struct {
	SubmissionUUID    string                 `json:"submission_uuid"`
	TemplateObjectKey string                 `json:"template_object_key"`
	TemplateMD5       string                 `json:"template_md5"`
	Candidate         *types.CandidateRecord `json:"candidate"`
	SourceChannel     string                 `json:"source_channel"`
}
