package protocol

// JoinPayload 入桌申请（由新加入的客户端广播，房主处理）
type JoinPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// RequestStatePayload 补发快照请求，无字段，保留结构便于扩展
type RequestStatePayload struct{}

// state 消息的 payload 即完整的 GameState 快照，由 peer 层直接
// 序列化 game.State，protocol 包不反向依赖 game 包。
