package codec

import (
	"encoding/json"
	"fmt"

	"github.com/remi-game/remi/internal/protocol"
)

// Encode serializes a message for the wire using a pooled buffer.
func Encode(msg *protocol.Message) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(msg); err != nil {
		return nil, fmt.Errorf("encode %s message: %w", msg.Type, err)
	}

	// Copy out: the buffer goes back to the pool.
	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return data, nil
}

// Decode parses a wire frame into a Message.
func Decode(data []byte) (*protocol.Message, error) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("decode message: missing type")
	}
	return &msg, nil
}
