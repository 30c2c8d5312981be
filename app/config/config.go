package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"RetailApp/app/security"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Business Information
	Business BusinessConfig `json:"business"`

	// System Configuration
	System SystemConfig `json:"system"`

	// Restock and due-date alerting
	Alerts AlertsConfig `json:"alerts"`

	// Google Sheets export
	Sheets SheetsConfig `json:"sheets"`

	// First run flag
	FirstRun bool `json:"first_run"`
}

// BusinessConfig holds business information
type BusinessConfig struct {
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// SystemConfig holds system settings
type SystemConfig struct {
	DataPath      string `json:"data_path"`
	WebSocketPort int    `json:"websocket_port"`
	Language      string `json:"language"`
}

// AlertsConfig holds the alert engine settings
type AlertsConfig struct {
	LowStockEnabled    bool `json:"low_stock_enabled"`
	ConsumptionEnabled bool `json:"consumption_enabled"`
	DueDatesEnabled    bool `json:"due_dates_enabled"`
	DueSoonDays        int  `json:"due_soon_days"`
}

// SheetsConfig holds Google Sheets export settings. The service account
// key is stored encrypted inside config.json.
type SheetsConfig struct {
	Enabled           bool   `json:"enabled"`
	SpreadsheetID     string `json:"spreadsheet_id"`
	SheetName         string `json:"sheet_name"`
	ServiceAccountKey string `json:"service_account_key"`
	SyncTime          string `json:"sync_time"` // HH:MM, 24h
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}

	configDir := filepath.Join(base, "RetailApp")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads configuration from config.json and decrypts sensitive fields
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	if err := cfg.decryptSensitiveFields(); err != nil {
		return nil, fmt.Errorf("could not decrypt sensitive fields: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to config.json after encrypting sensitive fields
func SaveConfig(cfg *AppConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Work on a copy so the caller keeps plaintext values
	cfgCopy := *cfg

	if err := cfgCopy.encryptSensitiveFields(); err != nil {
		return fmt.Errorf("could not encrypt sensitive fields: %w", err)
	}

	data, err := json.MarshalIndent(&cfgCopy, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}

	return nil
}

// ConfigExists checks if config file exists
func ConfigExists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// LoadOrCreate returns the saved configuration, creating the default one
// on first run.
func LoadOrCreate() (*AppConfig, error) {
	exists, err := ConfigExists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return CreateDefaultConfig()
	}
	return LoadConfig()
}

// CreateDefaultConfig creates a default configuration file
func CreateDefaultConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Business: BusinessConfig{
			Name:         "My Store",
			CurrencyCode: "BRL",
		},
		System: SystemConfig{
			DataPath:      "",
			WebSocketPort: 34115,
			Language:      "en",
		},
		Alerts: AlertsConfig{
			LowStockEnabled:    true,
			ConsumptionEnabled: true,
			DueDatesEnabled:    true,
			DueSoonDays:        7,
		},
		Sheets: SheetsConfig{
			Enabled:   false,
			SheetName: "Daily Sales",
			SyncTime:  "21:00",
		},
		FirstRun: true,
	}

	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MarkSetupComplete marks the first run as complete
func MarkSetupComplete() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	cfg.FirstRun = false
	return SaveConfig(cfg)
}

// DatabasePath resolves the SQLite file location. An explicit DataPath
// wins; the default sits next to the config file.
func (cfg *AppConfig) DatabasePath() (string, error) {
	if cfg.System.DataPath != "" {
		return cfg.System.DataPath, nil
	}
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "retail.db"), nil
}

// encryptSensitiveFields encrypts sensitive configuration fields
func (cfg *AppConfig) encryptSensitiveFields() error {
	var err error

	if cfg.Sheets.ServiceAccountKey != "" {
		cfg.Sheets.ServiceAccountKey, err = security.Encrypt(cfg.Sheets.ServiceAccountKey)
		if err != nil {
			return fmt.Errorf("could not encrypt service account key: %w", err)
		}
	}

	return nil
}

// decryptSensitiveFields decrypts sensitive configuration fields
// If a field is not encrypted (plain text), it leaves it as-is (useful for development)
func (cfg *AppConfig) decryptSensitiveFields() error {
	if cfg.Sheets.ServiceAccountKey != "" {
		decrypted, err := security.Decrypt(cfg.Sheets.ServiceAccountKey)
		if err != nil {
			// If decryption fails, assume it's plain text
			decrypted = cfg.Sheets.ServiceAccountKey
		}
		cfg.Sheets.ServiceAccountKey = decrypted
	}

	return nil
}
