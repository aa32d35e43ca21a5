package config

import (
	"encoding/json"
	"fmt"
	"os"

	"ticksignal/core"
)

// Defaults of the demo: print a counter every 509 ms using a 1 MHz,
// 32-bit counter on compare channel 0.
const (
	DefaultFrequencyHz = core.TimerFreq1MHz
	DefaultBitWidth    = 32
	DefaultChannel     = 0
	DefaultTargetUS    = 509 * 1000
)

// DefaultTimerConfig returns the demo configuration. The compare interval
// equals the target, so every compare event raises the ready signal.
func DefaultTimerConfig() core.TimerConfig {
	return core.TimerConfig{
		FrequencyHz: DefaultFrequencyHz,
		BitWidth:    DefaultBitWidth,
		Channel:     DefaultChannel,
		TargetUS:    DefaultTargetUS,
	}
}

// LoadConfig parses a JSON configuration, applies defaults and validates it
func LoadConfig(jsonData []byte) (*core.TimerConfig, error) {
	var config core.TimerConfig

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFile reads and parses a JSON configuration file
func LoadFile(path string) (*core.TimerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return LoadConfig(data)
}

// applyDefaults fills in missing configuration values with the demo defaults.
// CompareUS stays 0 (one compare event per signal) unless set.
func applyDefaults(config *core.TimerConfig) {
	if config.FrequencyHz == 0 {
		config.FrequencyHz = DefaultFrequencyHz
	}
	if config.BitWidth == 0 {
		config.BitWidth = DefaultBitWidth
	}
	if config.TargetUS == 0 {
		config.TargetUS = DefaultTargetUS
	}
}
