package normalizer

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var rulesYAML []byte

// RulesConfig chứa cấu hình rules được load từ YAML
type RulesConfig struct {
	CharSubstitutions map[string]string `yaml:"char_substitutions"`
	EdgePunctuation   string            `yaml:"edge_punctuation"`
}

// LoadRulesConfig load cấu hình rules từ embedded YAML file
func LoadRulesConfig() (*RulesConfig, error) {
	config := &RulesConfig{}
	if err := yaml.Unmarshal(rulesYAML, config); err != nil {
		return nil, err
	}
	return config, nil
}

// mustLoadRules load rules lúc khởi động; file được embed nên lỗi ở đây
// nghĩa là binary bị hỏng.
func mustLoadRules() *RulesConfig {
	config, err := LoadRulesConfig()
	if err != nil {
		panic("normalizer: cannot load embedded rules: " + err.Error())
	}
	return config
}
