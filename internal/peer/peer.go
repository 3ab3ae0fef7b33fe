// Package peer 实现复制层：每个客户端持有一份完整的对局快照，
// 本地校验通过的变更先替换本地副本、再整体广播；收到的 state 消息
// 无条件覆盖本地副本（最后收到者胜），没有合并。入桌准入只由房主
// 执行，补发快照则任何持有非空副本的端都可以应答。
package peer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/remi-game/remi/internal/apperrors"
	"github.com/remi-game/remi/internal/game"
	"github.com/remi-game/remi/internal/protocol"
	"github.com/remi-game/remi/internal/transport"
)

// 单次发布的传输超时
const publishTimeout = 5 * time.Second

// 追赶策略默认值，可在 Options 覆盖
const (
	DefaultCatchupAttempts = 5
	DefaultCatchupWait     = 2 * time.Second
)

// Options 构建 Peer 的参数
type Options struct {
	SelfID   string
	SelfName string
	Channel  transport.Channel

	// OnState 每次本地副本被替换后调用（本地变更与远端快照都算）。
	// 在 Peer 的内部协程或动作调用方的协程里执行，不得阻塞。
	OnState func(*game.State)

	// 追赶策略：0 取默认值
	CatchupAttempts int
	CatchupWait     time.Duration
}

// Peer 一个持有本地副本的参与端
type Peer struct {
	id      string
	name    string
	ch      transport.Channel
	onState func(*game.State)
	log     *logrus.Entry

	mu    sync.Mutex
	state *game.State
}

func newPeer(opts Options) *Peer {
	return &Peer{
		id:      opts.SelfID,
		name:    opts.SelfName,
		ch:      opts.Channel,
		onState: opts.OnState,
		log:     logrus.WithField("player", opts.SelfID),
	}
}

// Host 以房主身份开新桌：本地创建 lobby 快照并广播
func Host(ctx context.Context, opts Options, inviteCode string) (*Peer, error) {
	p := newPeer(opts)
	st := game.NewLobby(inviteCode, p.id, p.name)

	p.mu.Lock()
	p.state = st
	p.mu.Unlock()

	if err := p.publishState(ctx, st); err != nil {
		return nil, err
	}
	p.notify(st)
	return p, nil
}

// Join 以普通玩家身份入桌：广播 join 与 request_state，等待一份
// 包含自己的快照。每轮等待超时后重发，线性回退，耗尽次数返回
// ErrNoSnapshot（追赶无人应答，比如本端是第一个订阅者）。
func Join(ctx context.Context, opts Options) (*Peer, error) {
	p := newPeer(opts)

	attempts := opts.CatchupAttempts
	if attempts <= 0 {
		attempts = DefaultCatchupAttempts
	}
	wait := opts.CatchupWait
	if wait <= 0 {
		wait = DefaultCatchupWait
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := p.publishJoin(ctx); err != nil {
			return nil, err
		}
		if err := p.publish(ctx, protocol.MsgRequestState, protocol.RequestStatePayload{}); err != nil {
			return nil, err
		}

		admitted, err := p.awaitAdmission(ctx, time.Duration(attempt)*wait)
		if err != nil {
			return nil, err
		}
		if admitted {
			return p, nil
		}
		p.log.WithField("attempt", attempt).Info("no snapshot yet, re-requesting")
	}
	return nil, apperrors.ErrNoSnapshot
}

func (p *Peer) publishJoin(ctx context.Context) error {
	return p.publish(ctx, protocol.MsgJoin, protocol.JoinPayload{
		PlayerID: p.id,
		Name:     p.name,
	})
}

// awaitAdmission 在一轮等待窗口内消费入站消息，直到出现包含自己的快照
func (p *Peer) awaitAdmission(ctx context.Context, window time.Duration) (bool, error) {
	timer := time.NewTimer(window)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
			return false, nil
		case msg, ok := <-p.ch.Messages():
			if !ok {
				return false, apperrors.ErrNoSnapshot
			}
			if msg.Type != protocol.MsgState {
				continue
			}
			st, err := decodeState(msg)
			if err != nil {
				p.log.WithError(err).Warn("bad state message during catch-up")
				continue
			}
			// 任何快照都先落地（后续覆盖语义一致），
			// 但只有包含自己的快照才算入桌成功
			p.replace(st)
			if st.Player(p.id) != nil {
				return true, nil
			}
		}
	}
}

// Run 事件环路：消费入站消息直到 ctx 结束或信道关闭。
// 单协程处理，对应每端内部无并行状态变更的模型。
func (p *Peer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-p.ch.Messages():
			if !ok {
				return nil
			}
			p.handle(ctx, msg)
		}
	}
}

func (p *Peer) handle(ctx context.Context, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgState:
		st, err := decodeState(msg)
		if err != nil {
			p.log.WithError(err).Warn("dropping bad state message")
			return
		}
		p.replace(st)

	case protocol.MsgJoin:
		p.handleJoin(ctx, msg)

	case protocol.MsgRequestState:
		if st := p.State(); st != nil {
			if err := p.publishState(ctx, st); err != nil {
				p.log.WithError(err).Warn("failed to answer state request")
			}
		}

	default:
		p.log.WithField("type", msg.Type).Debug("ignoring unknown message")
	}
}

// handleJoin 只有当前房主处理准入；规则拒绝（重复、满员、已开局）
// 按既定一致性模型静默放过，不广播错误
func (p *Peer) handleJoin(ctx context.Context, msg *protocol.Message) {
	var payload protocol.JoinPayload
	if err := msg.DecodePayload(&payload); err != nil {
		p.log.WithError(err).Warn("dropping bad join message")
		return
	}

	p.mu.Lock()
	st := p.state
	if st == nil || !st.IsHost(p.id) || payload.PlayerID == p.id {
		p.mu.Unlock()
		return
	}
	ns, err := st.AddPlayer(payload.PlayerID, payload.Name)
	if err != nil {
		p.mu.Unlock()
		p.log.WithError(err).WithField("joiner", payload.PlayerID).Debug("join ignored")
		return
	}
	p.state = ns
	p.mu.Unlock()

	p.notify(ns)
	if err := p.publishState(ctx, ns); err != nil {
		p.log.WithError(err).Warn("failed to publish admission")
	}
}

// replace 无条件覆盖本地副本
func (p *Peer) replace(st *game.State) {
	p.mu.Lock()
	p.state = st
	p.mu.Unlock()
	p.notify(st)
}

func (p *Peer) notify(st *game.State) {
	if p.onState != nil {
		p.onState(st)
	}
}

// ID 本端玩家 id
func (p *Peer) ID() string { return p.id }

// Name 本端玩家显示名
func (p *Peer) Name() string { return p.name }

// State 当前本地快照（视为不可变，只读）
func (p *Peer) State() *game.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsHost 本端是否房主
func (p *Peer) IsHost() bool {
	st := p.State()
	return st != nil && st.IsHost(p.id)
}

func decodeState(msg *protocol.Message) (*game.State, error) {
	var st game.State
	if err := msg.DecodePayload(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (p *Peer) publishState(ctx context.Context, st *game.State) error {
	return p.publish(ctx, protocol.MsgState, st)
}

func (p *Peer) publish(ctx context.Context, t protocol.MessageType, payload any) error {
	msg, err := protocol.NewMessage(t, payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return p.ch.Publish(ctx, msg)
}
