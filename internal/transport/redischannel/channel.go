// Package redischannel 用 Redis Pub/Sub 实现广播信道，
// 主题按邀请码编址，多端订阅同一主题即为同桌。
package redischannel

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/remi-game/remi/internal/protocol"
	"github.com/remi-game/remi/internal/protocol/codec"
	"github.com/remi-game/remi/internal/transport"
)

// Redis 主题 key 前缀
const topicPrefix = "table:"

// Channel Redis Pub/Sub 信道
type Channel struct {
	client *redis.Client
	topic  string
	sub    *redis.PubSub

	messages  chan *protocol.Message
	closeOnce sync.Once
	log       *logrus.Entry
}

// New 订阅邀请码对应的主题并启动读环路。
// 等待订阅确认后才返回，保证之后的广播不会漏收。
func New(ctx context.Context, client *redis.Client, inviteCode string) (*Channel, error) {
	topic := topicPrefix + inviteCode
	sub := client.Subscribe(ctx, topic)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	ch := &Channel{
		client:   client,
		topic:    topic,
		sub:      sub,
		messages: make(chan *protocol.Message, transport.ReceiveBuffer),
		log:      logrus.WithField("topic", topic),
	}
	go ch.readLoop()
	return ch, nil
}

func (ch *Channel) readLoop() {
	defer close(ch.messages)

	for m := range ch.sub.Channel() {
		msg, err := codec.Decode([]byte(m.Payload))
		if err != nil {
			ch.log.WithError(err).Warn("dropping undecodable frame")
			continue
		}
		ch.messages <- msg
	}
}

// Publish 确认式发布：Redis 命令执行完成即视为传输层确认
func (ch *Channel) Publish(ctx context.Context, msg *protocol.Message) error {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}
	return ch.client.Publish(ctx, ch.topic, data).Err()
}

// Messages 接收流
func (ch *Channel) Messages() <-chan *protocol.Message {
	return ch.messages
}

// Close 退订主题，读环路随之结束并关闭接收流
func (ch *Channel) Close() error {
	var err error
	ch.closeOnce.Do(func() {
		err = ch.sub.Close()
	})
	return err
}
