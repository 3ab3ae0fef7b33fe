package protocol

import (
	"encoding/json"
	"fmt"
)

// Message 广播信道上的基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 信道消息类型：所有对局通信只有三种消息
const (
	MsgState        MessageType = "state"         // 全量状态快照
	MsgJoin         MessageType = "join"          // 入桌申请（仅房主处理）
	MsgRequestState MessageType = "request_state" // 补发快照请求（后加入者追赶）
)

// NewMessage 构造消息并序列化 payload
func NewMessage(t MessageType, payload any) (*Message, error) {
	msg := &Message{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", t, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// DecodePayload 解析消息的 payload 到目标结构
func (m *Message) DecodePayload(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", m.Type, err)
	}
	return nil
}
