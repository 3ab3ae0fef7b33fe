// Package relay 提供一个哑转发中继：按邀请码分桌，把任一订阅者
// 发来的帧原样转发给该桌的所有订阅者（含发送者，对齐 Pub/Sub 的回显
// 语义）。中继不持有、也不理解任何对局状态，权威完全在客户端。
package relay

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 单连接发送缓冲，写不进去直接丢帧（慢消费者自己追赶）
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// 中继面向自家客户端，不校验来源
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub 所有桌子的订阅表
type Hub struct {
	mu     sync.RWMutex
	tables map[string]map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub 创建空的中继
func NewHub() *Hub {
	return &Hub{tables: make(map[string]map[*subscriber]struct{})}
}

// HandleWS 处理订阅连接，?table= 指定邀请码
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if table == "" {
		http.Error(w, "missing table", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(table, sub)
	logrus.WithField("table", table).Info("subscriber joined")

	go sub.writePump()
	h.readPump(table, sub)
}

func (h *Hub) register(table string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tables[table] == nil {
		h.tables[table] = make(map[*subscriber]struct{})
	}
	h.tables[table][sub] = struct{}{}
}

func (h *Hub) unregister(table string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.tables[table]; ok {
		if _, ok := subs[sub]; ok {
			delete(subs, sub)
			close(sub.send)
			if len(subs) == 0 {
				delete(h.tables, table)
			}
		}
	}
}

// broadcast 把帧转发给桌上每个订阅者（含发送者）
func (h *Hub) broadcast(table string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.tables[table] {
		select {
		case sub.send <- frame:
		default:
			logrus.WithField("table", table).Warn("dropping frame for slow subscriber")
		}
	}
}

func (h *Hub) readPump(table string, sub *subscriber) {
	defer func() {
		h.unregister(table, sub)
		_ = sub.conn.Close()
		logrus.WithField("table", table).Info("subscriber left")
	}()

	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := sub.conn.ReadMessage()
		if err != nil {
			return
		}
		h.broadcast(table, frame)
	}
}

func (sub *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
