// Package transport 抽象对局共享的广播信道：以邀请码为主题，
// 发布对所有订阅者至少一次送达，不保证跨发布者的接收顺序。
package transport

import (
	"context"

	"github.com/remi-game/remi/internal/protocol"
)

// Channel 一个已订阅主题的广播信道。
// Publish 为确认式发布：传输层确认收下后才返回。
// Messages 返回的通道在信道关闭后会被关闭。
type Channel interface {
	Publish(ctx context.Context, msg *protocol.Message) error
	Messages() <-chan *protocol.Message
	Close() error
}

// 接收缓冲大小，读环路解码后投递到该缓冲
const ReceiveBuffer = 64
