// Package config loads the pipeline's YAML configuration, interpolating
// ${NAME} environment references before unmarshalling. Grounded on the
// Python original's settings.py (yaml.safe_load + a regex expander) and on
// the pack's gatiella-binance-trading-bot cmd/bot/main.go, which loads a
// local .env with godotenv before reading config.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// TFConfig is one entry of the `timeframes` list (spec §6).
type TFConfig struct {
	TF                string  `yaml:"tf"`
	AdxTrendThreshold float64 `yaml:"adx_trend_threshold"`
	ScoreThreshold    int     `yaml:"score_threshold"`
}

// ExchangeConfig is the `exchange` block.
type ExchangeConfig struct {
	Symbols    []string `yaml:"symbols"`
	MarketType string   `yaml:"market_type"`
}

// IndicatorsConfig mirrors every parameter from spec §4.4.
type IndicatorsConfig struct {
	EMAFast    int     `yaml:"ema_fast"`
	EMASlow    int     `yaml:"ema_slow"`
	RSILength  int     `yaml:"rsi_length"`
	MACDFast   int     `yaml:"macd_fast"`
	MACDSlow   int     `yaml:"macd_slow"`
	MACDSignal int     `yaml:"macd_signal"`
	BBLength   int     `yaml:"bb_length"`
	BBStd      float64 `yaml:"bb_std"`
	ATRLength  int     `yaml:"atr_length"`
	ADXLength  int     `yaml:"adx_length"`
}

// SRConfig mirrors every parameter from spec §4.5.
type SRConfig struct {
	PivotWindow           int     `yaml:"pivot_window"`
	MergeTolerancePct     float64 `yaml:"merge_tolerance_pct"`
	MergeToleranceATRMult float64 `yaml:"merge_tolerance_atr_mult"`
	MaxAgeBars            int     `yaml:"max_age_bars"`
	DecayPerBar           float64 `yaml:"decay_per_bar"`
}

// AlertsConfig holds sink credentials, opaque to the core (spec §6).
type AlertsConfig struct {
	EnableTelegram bool   `yaml:"enable_telegram"`
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID string `yaml:"telegram_chat_id"`
	EnableWebhook  bool   `yaml:"enable_webhook"`
	WebhookURL     string `yaml:"webhook_url"`
	EnablePush     bool   `yaml:"enable_push"`
	FirebaseCreds  string `yaml:"firebase_credentials_path"`
	EnableWSBroadcast bool `yaml:"enable_ws_broadcast"`
	WSBroadcastAddr   string `yaml:"ws_broadcast_addr"`
}

// AuditConfig is a supplemental, optional pgx-backed signal/snapshot log.
type AuditConfig struct {
	Enabled     bool   `yaml:"enabled"`
	DatabaseURL string `yaml:"database_url"`
}

// BufferConfig configures the series buffer's per-key bound.
type BufferConfig struct {
	Limit int `yaml:"limit"`
}

// Config is the root configuration document.
type Config struct {
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Timeframes []TFConfig       `yaml:"timeframes"`
	Indicators IndicatorsConfig `yaml:"indicators"`
	SR         SRConfig         `yaml:"sr"`
	Alerts     AlertsConfig     `yaml:"alerts"`
	Audit      AuditConfig      `yaml:"audit"`
	Buffer     BufferConfig     `yaml:"buffer"`
}

var envPattern = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// expandEnv replaces every ${NAME} occurrence with the environment value
// for NAME; unresolved variables pass through unchanged (spec §6).
func expandEnv(raw []byte) []byte {
	return envPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		name := envPattern.FindSubmatch(match)[1]
		if v, ok := os.LookupEnv(string(name)); ok {
			return []byte(v)
		}
		return match
	})
}

// Load reads a local .env (if present, ignored otherwise) then parses the
// YAML file at path, expanding ${NAME} references before unmarshalling.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional local .env; missing file is not an error

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expandEnv(raw), &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}
