//go:build !production

package testutil

import (
	"context"
	"sync"

	"github.com/remi-game/remi/internal/protocol"
	"github.com/remi-game/remi/internal/protocol/codec"
	"github.com/remi-game/remi/internal/transport"
)

// Bus 进程内广播总线，按真实信道的回显语义投递（发送者也会收到），
// 并通过编解码一轮复制消息，模拟真实的线缆拷贝
type Bus struct {
	mu       sync.Mutex
	channels []*BusChannel
}

// NewBus 创建空总线
func NewBus() *Bus {
	return &Bus{}
}

// Channel 接入一个新订阅端
func (b *Bus) Channel() *BusChannel {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := &BusChannel{
		bus:      b,
		messages: make(chan *protocol.Message, transport.ReceiveBuffer),
	}
	b.channels = append(b.channels, ch)
	return ch
}

func (b *Bus) broadcast(frame []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.channels {
		if ch.closed {
			continue
		}
		msg, err := codec.Decode(frame)
		if err != nil {
			continue
		}
		select {
		case ch.messages <- msg:
		default:
		}
	}
}

// BusChannel 实现 transport.Channel
type BusChannel struct {
	bus      *Bus
	messages chan *protocol.Message

	closeOnce sync.Once
	closed    bool
}

func (ch *BusChannel) Publish(_ context.Context, msg *protocol.Message) error {
	frame, err := codec.Encode(msg)
	if err != nil {
		return err
	}
	ch.bus.broadcast(frame)
	return nil
}

func (ch *BusChannel) Messages() <-chan *protocol.Message {
	return ch.messages
}

func (ch *BusChannel) Close() error {
	ch.closeOnce.Do(func() {
		ch.bus.mu.Lock()
		ch.closed = true
		ch.bus.mu.Unlock()
		close(ch.messages)
	})
	return nil
}
