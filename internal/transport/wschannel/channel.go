// Package wschannel 通过中继的 WebSocket 实现广播信道，
// 供没有 Redis 可用的桌子使用。中继只做逐帧转发，不理解消息内容。
package wschannel

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/remi-game/remi/internal/protocol"
	"github.com/remi-game/remi/internal/protocol/codec"
	"github.com/remi-game/remi/internal/transport"
)

const (
	// 写超时
	writeWait = 10 * time.Second
	// pong 等待上限，超时视为断线
	pongWait = 60 * time.Second
	// ping 发送周期，必须小于 pongWait
	pingPeriod = (pongWait * 9) / 10

	maxReconnectAttempts = 5
	reconnectBaseDelay   = time.Second
)

// Channel WebSocket 中继信道
type Channel struct {
	url string

	mu   sync.Mutex // 保护 conn 的写入与替换
	conn *websocket.Conn

	messages chan *protocol.Message
	done     chan struct{}

	closeOnce sync.Once
	log       *logrus.Entry
}

// Dial 连接中继并订阅邀请码对应的主题
func Dial(ctx context.Context, relayURL, inviteCode string) (*Channel, error) {
	endpoint := strings.TrimRight(relayURL, "/") + "/ws?table=" + url.QueryEscape(inviteCode)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	ch := &Channel{
		url:      endpoint,
		conn:     conn,
		messages: make(chan *protocol.Message, transport.ReceiveBuffer),
		done:     make(chan struct{}),
		log:      logrus.WithField("relay", endpoint),
	}
	go ch.readPump()
	go ch.pingLoop()
	return ch, nil
}

// readPump 从中继读取帧，解码后投递到接收流；
// 断线时带回退重连，重连耗尽才关闭接收流
func (ch *Channel) readPump() {
	defer close(ch.messages)

	for {
		conn := ch.current()
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				select {
				case <-ch.done:
					return
				default:
				}
				if !ch.tryReconnect() {
					return
				}
				break // 换上新连接继续读
			}

			msg, err := codec.Decode(data)
			if err != nil {
				ch.log.WithError(err).Warn("dropping undecodable frame")
				continue
			}
			select {
			case ch.messages <- msg:
			case <-ch.done:
				return
			}
		}
	}
}

// pingLoop 周期性发 ping，借 pong 刷新读超时
func (ch *Channel) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ch.mu.Lock()
			_ = ch.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ch.conn.WriteMessage(websocket.PingMessage, nil)
			ch.mu.Unlock()
		case <-ch.done:
			return
		}
	}
}

// tryReconnect 带线性回退重连，成功则替换连接
func (ch *Channel) tryReconnect() bool {
	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		select {
		case <-ch.done:
			return false
		case <-time.After(time.Duration(attempt) * reconnectBaseDelay):
		}

		conn, _, err := websocket.DefaultDialer.Dial(ch.url, nil)
		if err != nil {
			ch.log.WithError(err).WithField("attempt", attempt).Warn("reconnect failed")
			continue
		}

		ch.mu.Lock()
		_ = ch.conn.Close()
		ch.conn = conn
		ch.mu.Unlock()
		ch.log.WithField("attempt", attempt).Info("reconnected to relay")
		return true
	}
	return false
}

func (ch *Channel) current() *websocket.Conn {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.conn
}

// Publish 确认式发布：同步写入，写调用返回即视为传输层收下
func (ch *Channel) Publish(ctx context.Context, msg *protocol.Message) error {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	_ = ch.conn.SetWriteDeadline(deadline)
	return ch.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Messages 接收流
func (ch *Channel) Messages() <-chan *protocol.Message {
	return ch.messages
}

// Close 关闭信道和底层连接
func (ch *Channel) Close() error {
	var err error
	ch.closeOnce.Do(func() {
		close(ch.done)
		ch.mu.Lock()
		err = ch.conn.Close()
		ch.mu.Unlock()
	})
	return err
}
