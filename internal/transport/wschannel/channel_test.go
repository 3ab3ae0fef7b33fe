package wschannel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remi-game/remi/internal/protocol"
	"github.com/remi-game/remi/internal/relay"
)

func newRelayServer(t *testing.T) string {
	t.Helper()
	hub := relay.NewHub()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRelayEchoesToAllSubscribers(t *testing.T) {
	relayURL := newRelayServer(t)
	ctx := context.Background()

	a, err := Dial(ctx, relayURL, "777777")
	require.NoError(t, err)
	defer a.Close()
	b, err := Dial(ctx, relayURL, "777777")
	require.NoError(t, err)
	defer b.Close()

	msg, err := protocol.NewMessage(protocol.MsgJoin, protocol.JoinPayload{PlayerID: "p1", Name: "Ana"})
	require.NoError(t, err)
	require.NoError(t, a.Publish(ctx, msg))

	// Both the other subscriber and the sender get the frame back.
	for _, ch := range []*Channel{b, a} {
		select {
		case got := <-ch.Messages():
			assert.Equal(t, protocol.MsgJoin, got.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("frame not forwarded")
		}
	}
}

func TestRelayIsolatesTables(t *testing.T) {
	relayURL := newRelayServer(t)
	ctx := context.Background()

	a, err := Dial(ctx, relayURL, "111111")
	require.NoError(t, err)
	defer a.Close()
	b, err := Dial(ctx, relayURL, "222222")
	require.NoError(t, err)
	defer b.Close()

	msg, err := protocol.NewMessage(protocol.MsgRequestState, protocol.RequestStatePayload{})
	require.NoError(t, err)
	require.NoError(t, a.Publish(ctx, msg))

	select {
	case got := <-b.Messages():
		t.Fatalf("frame leaked across tables: %+v", got)
	case <-time.After(150 * time.Millisecond):
	}
}
