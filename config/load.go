package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load 以 StartConfig 为底，叠加 path 指向的 yaml 文件（json 是 yaml 的子集，同样可用）。
// path 为空时直接返回 StartConfig。
func Load(path string) (Config, error) {
	cfg := StartConfig
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
