package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"

	"github.com/remi-game/remi/internal/config"
	"github.com/remi-game/remi/internal/game"
	"github.com/remi-game/remi/internal/identity"
	"github.com/remi-game/remi/internal/logger"
	"github.com/remi-game/remi/internal/peer"
	"github.com/remi-game/remi/internal/transport"
	"github.com/remi-game/remi/internal/transport/redischannel"
	"github.com/remi-game/remi/internal/transport/wschannel"
	"github.com/remi-game/remi/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	name := flag.String("name", "", "玩家昵称（覆盖配置文件）")
	host := flag.Bool("host", false, "开新桌并生成房间号")
	join := flag.String("join", "", "加入指定房间号")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *name != "" {
		cfg.Player.Name = *name
	}

	// 昵称或房间号缺失时用表单补齐
	needCode := !*host && *join == ""
	if cfg.Player.Name == "" || needCode {
		setup := ui.NewSetup(cfg.Player.Name, needCode)
		final, err := tea.NewProgram(setup).Run()
		if err != nil {
			log.Fatalf("启动表单时出错: %v", err)
		}
		result := final.(ui.SetupModel).Result()
		if result.Aborted {
			os.Exit(0)
		}
		cfg.Player.Name = result.Name
		if needCode {
			*join = result.InviteCode
		}
	}

	if err := logger.Init(); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	id, err := identity.Load()
	if err != nil {
		log.Fatalf("加载本机身份失败: %v", err)
	}

	inviteCode := *join
	if *host {
		inviteCode = newInviteCode()
	}

	ctx := context.Background()
	ch, err := dial(ctx, cfg, inviteCode)
	if err != nil {
		log.Fatalf("连接信道失败: %v", err)
	}
	defer ch.Close()

	// 快照经 OnState 喂给界面
	states := make(chan *game.State, 8)
	opts := peer.Options{
		SelfID:   id.ID,
		SelfName: cfg.Player.Name,
		Channel:  ch,
		OnState: func(st *game.State) {
			select {
			case states <- st:
			default: // 界面来不及消费时丢弃旧快照，下一份会覆盖
			}
		},
		CatchupAttempts: cfg.Catchup.Attempts,
		CatchupWait:     cfg.Catchup.WaitDuration(),
	}

	var p *peer.Peer
	if *host {
		p, err = peer.Host(ctx, opts, inviteCode)
	} else {
		p, err = peer.Join(ctx, opts)
	}
	if err != nil {
		log.Fatalf("入桌失败: %v", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		// Run 返回意味着信道已断开，关闭 states 让界面退出
		_ = p.Run(runCtx)
		close(states)
	}()

	if *host {
		fmt.Printf("房间号: %s\n", inviteCode)
	}

	program := tea.NewProgram(ui.New(p, states), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}

// dial 按配置选择 Redis 或 WebSocket 中继信道
func dial(ctx context.Context, cfg *config.Config, inviteCode string) (transport.Channel, error) {
	switch cfg.Transport {
	case "ws":
		return wschannel.Dial(ctx, cfg.Relay.URL, inviteCode)
	default:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redischannel.New(ctx, client, inviteCode)
	}
}

// newInviteCode 生成 6 位数字房间号
func newInviteCode() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}
