package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Config{
		Endpoints: []Endpoint{
			{Name: "Primary", URL: "https://rpc.example.org"},
			{Name: "Backup", URL: "wss://rpc2.example.org"},
		},
		ChainID:     4818,
		Contract:    "0x1111111111111111111111111111111111111111",
		PriceAsset:  "kpg-token",
		TokenSymbol: "KPGT",
		KeyFile:     "/tmp/key.json",
		Connector:   Connector{ID: "keyfile", Account: "0xabc"},
		Logger:      true,
	}
	Save(path, cfg)

	got := Load(path)
	if len(got.Endpoints) != 2 || got.Endpoints[0].Name != "Primary" || got.Endpoints[1].URL != "wss://rpc2.example.org" {
		t.Errorf("endpoints did not survive roundtrip: %+v", got.Endpoints)
	}
	if got.ChainID != 4818 || got.Contract != cfg.Contract || got.TokenSymbol != "KPGT" {
		t.Errorf("chain fields did not survive roundtrip: %+v", got)
	}
	if got.Connector.ID != "keyfile" || got.Connector.Account != "0xabc" {
		t.Errorf("connector marker did not survive roundtrip: %+v", got.Connector)
	}
	if !got.Logger {
		t.Error("logger flag did not survive roundtrip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "nope.json"))
	if len(got.Endpoints) != 0 || got.ChainID != 0 {
		t.Errorf("expected zero config for missing file, got %+v", got)
	}
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := LoadOrCreate(path)
	if cfg.ChainID != 4818 {
		t.Errorf("default chain id = %d, want 4818", cfg.ChainID)
	}
	if len(cfg.Endpoints) == 0 {
		t.Error("default config has no endpoint candidates")
	}
	if cfg.TokenSymbol != "KPGT" {
		t.Errorf("default token symbol = %q", cfg.TokenSymbol)
	}

	// the default must have been persisted
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file was not created: %v", err)
	}
	again := LoadOrCreate(path)
	if again.ChainID != cfg.ChainID || len(again.Endpoints) != len(cfg.Endpoints) {
		t.Errorf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadOrCreateCorruptFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := LoadOrCreate(path)
	if cfg.ChainID != 4818 {
		t.Errorf("corrupt config should fall back to defaults, got chain %d", cfg.ChainID)
	}
}
