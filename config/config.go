// Package config loads navigator configuration from TOML files and
// environment variables via Viper.
package config

// Config represents the navigator configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LedgerConfig configures the on-chain contract the relay submits to
type LedgerConfig struct {
	// Contract is the account the like action is deployed under
	Contract string `mapstructure:"contract"`
	// Permission is the authorization level used when signing (default: "active")
	Permission string `mapstructure:"permission"`
}

// WalletConfig configures the local wallet/signer session daemon
type WalletConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}
