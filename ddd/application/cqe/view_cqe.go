package cqe

// RecordViewReq 浏览上报请求体，全部字段可选。
type RecordViewReq struct {
	SessionID string `json:"session_id"`
}

// RecordViewCmd 浏览记录命令，由控制器根据请求上下文组装。
type RecordViewCmd struct {
	ArticleID   uint64
	Fingerprint string
	ViewerID    *uint64
	UserAgent   string
	SessionID   string
}
