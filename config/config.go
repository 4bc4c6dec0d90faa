package config

import (
	"encoding/json"
	"os"
)

// Config represents the application configuration
type Config struct {
	Endpoints   []Endpoint `json:"endpoints"`
	ChainID     int64      `json:"chain_id"`
	Contract    string     `json:"contract"`
	PriceAsset  string     `json:"price_asset"`
	TokenSymbol string     `json:"token_symbol"`
	KeyFile     string     `json:"key_file,omitempty"`
	Connector   Connector  `json:"connector"`
	Logger      bool       `json:"logger"`
}

// Endpoint represents an RPC endpoint candidate. Candidates are probed
// in the order they appear in the config.
type Endpoint struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Connector is the persisted "last connector used" marker that drives
// automatic wallet reconnection at startup. An empty ID means no marker.
type Connector struct {
	ID      string `json:"id,omitempty"`
	Account string `json:"account,omitempty"`
}

// Page identifies the active view
type Page int

const (
	PageHome Page = iota
	PageCampaigns
	PageCompleted
	PageDetail
	PageCreate
	PageSettings
)

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Endpoints: []Endpoint{
			{Name: "Paseo 1", URL: "https://rpc1.paseo.mandalachain.io"},
			{Name: "Paseo 2", URL: "https://rpc2.paseo.mandalachain.io"},
			{Name: "Mainnet", URL: "https://rpc.mandalachain.io"},
		},
		ChainID:     4818,
		Contract:    "0x0000000000000000000000000000000000000000",
		PriceAsset:  "kpg-token",
		TokenSymbol: "KPGT",
		Logger:      false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := DefaultConfig()
		Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}
