package redischannel

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remi-game/remi/internal/protocol"
)

func newTestChannel(t *testing.T, mr *miniredis.Miniredis, code string) *Channel {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ch, err := New(context.Background(), client, code)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func recvMessage(t *testing.T, ch *Channel) *protocol.Message {
	t.Helper()
	select {
	case msg := <-ch.Messages():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	a := newTestChannel(t, mr, "424242")
	b := newTestChannel(t, mr, "424242")

	msg, err := protocol.NewMessage(protocol.MsgJoin, protocol.JoinPayload{
		PlayerID: "p1",
		Name:     "Ana",
	})
	require.NoError(t, err)
	require.NoError(t, a.Publish(context.Background(), msg))

	// Pub/sub echoes to every subscriber of the topic, the sender included.
	for _, ch := range []*Channel{a, b} {
		got := recvMessage(t, ch)
		assert.Equal(t, protocol.MsgJoin, got.Type)
		var payload protocol.JoinPayload
		require.NoError(t, got.DecodePayload(&payload))
		assert.Equal(t, "p1", payload.PlayerID)
	}
}

func TestTopicsAreIsolatedByInviteCode(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	a := newTestChannel(t, mr, "111111")
	b := newTestChannel(t, mr, "222222")

	msg, err := protocol.NewMessage(protocol.MsgRequestState, protocol.RequestStatePayload{})
	require.NoError(t, err)
	require.NoError(t, a.Publish(context.Background(), msg))

	recvMessage(t, a)
	select {
	case got := <-b.Messages():
		t.Fatalf("message leaked across tables: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCloseEndsReceiveStream(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ch := newTestChannel(t, mr, "333333")
	require.NoError(t, ch.Close())

	select {
	case _, ok := <-ch.Messages():
		assert.False(t, ok, "stream should be closed, not deliver")
	case <-time.After(2 * time.Second):
		t.Fatal("receive stream not closed")
	}
}
