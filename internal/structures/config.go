package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// TreasuryConfig wires the contract to its ledger accounts and controls the
// host-side jobs around it.
type TreasuryConfig struct {
	// PooledAccount holds the migrated supply before distribution.
	PooledAccount string `yaml:"pooledAccount" validate:"required"`
	// ReserveAccount is the pool the monthly burn draws from.
	ReserveAccount string `yaml:"reserveAccount" validate:"required"`
	// MintAuthority is the identity the ledger accepts for mint and burn.
	MintAuthority string `yaml:"mintAuthority" validate:"required"`
	// Accounts are additional ledger accounts known at startup (wallet pools,
	// deposit targets). Migration entries may only reference known accounts.
	Accounts []string `yaml:"accounts"`
	// AutoBurn enables the scheduled monthly burn attempt.
	AutoBurn          bool          `yaml:"autoBurn"`
	BurnCheckInterval time.Duration `yaml:"burnCheckInterval"`
	// JournalPath is the append-only operation journal; empty disables it.
	JournalPath string `yaml:"journalPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Treasury    TreasuryConfig `yaml:"treasury"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
