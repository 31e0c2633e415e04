package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files.
type StructuredJSONConfig struct {
	App struct {
		UserID       string `json:"user_id"`
		DevMode      bool   `json:"dev_mode"`
		Token        string `json:"token"`
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		HashKey      string `json:"hash_key"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Vault struct {
		KeyStore            string   `json:"keystore"`
		Service             string   `json:"service"`
		DerivationSalt      string   `json:"derivation_salt"`
		AutoLock            Duration `json:"auto_lock"`
		MaxUnlockAttempts   int      `json:"max_unlock_attempts"`
		UnlockRetryInterval Duration `json:"unlock_retry_interval"`
	} `json:"vault,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Log struct {
		Dir string `json:"dir"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			UserID:       jsonCfg.App.UserID,
			DevMode:      jsonCfg.App.DevMode,
			Token:        jsonCfg.App.Token,
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			HashKey:      jsonCfg.App.HashKey,
			Version:      jsonCfg.App.Version,
		},
		Vault: Vault{
			KeyStore:            jsonCfg.Vault.KeyStore,
			Service:             jsonCfg.Vault.Service,
			DerivationSalt:      jsonCfg.Vault.DerivationSalt,
			AutoLock:            time.Duration(jsonCfg.Vault.AutoLock),
			MaxUnlockAttempts:   jsonCfg.Vault.MaxUnlockAttempts,
			UnlockRetryInterval: time.Duration(jsonCfg.Vault.UnlockRetryInterval),
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Log: Log{Dir: jsonCfg.Log.Dir},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
