package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadNameAlias 读取 原始值 -> 展示名 的yaml字典，用于规则中类别名、属性名的展示
//
//	"0": negative
//	"1": positive
func LoadNameAlias(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	alias := make(map[string]string)
	if err = yaml.Unmarshal(content, &alias); err != nil {
		return nil, err
	}
	return alias, nil
}
