package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "navigator.db")

	// Ledger defaults
	v.SetDefault("ledger.contract", "polaris.music")
	v.SetDefault("ledger.permission", "active")

	// Wallet session defaults (local signer daemon)
	v.SetDefault("wallet.url", "http://127.0.0.1:9876")
	v.SetDefault("wallet.timeout_seconds", 30)

	// Logging defaults
	v.SetDefault("log.json", false)
}
