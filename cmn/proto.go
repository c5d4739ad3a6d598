package cmn

// ErrorReply 错误响应体 {"detail": "..."}
type ErrorReply struct {
	Detail string `json:"detail"`
}

// HealthReply 健康检查响应体
type HealthReply struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
