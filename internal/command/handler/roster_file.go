package command

import (
	"encoding/json"
	"fmt"
	"os"
)

// readRosterFile 讀取原始 profile 的 JSON 陣列
func readRosterFile(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profiles []map[string]any
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of profiles: %w", path, err)
	}
	return profiles, nil
}
