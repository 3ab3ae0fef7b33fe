// Package identity 维护稳定的本机玩家 id：首次运行生成并落盘，
// 之后每次启动复用。核心层只把它当不透明字符串。
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const fileName = "identity.json"

// Identity 本机身份
type Identity struct {
	ID string `json:"id"`
}

// Load 读取或创建 ~/.remi/identity.json
func Load() (*Identity, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".remi")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create identity directory: %w", err)
	}
	return loadFrom(filepath.Join(dir, fileName))
}

func loadFrom(path string) (*Identity, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		var id Identity
		if jsonErr := json.Unmarshal(data, &id); jsonErr == nil && id.ID != "" {
			return &id, nil
		}
		// 文件损坏则重新生成
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	id := &Identity{ID: uuid.NewString()}
	data, err = json.Marshal(id)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist identity: %w", err)
	}
	return id, nil
}
