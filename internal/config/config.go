package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

// Config is loaded once at process start and never mutated afterwards.
type Config struct {
	NodeEndpoint    string `env:"NODE_ENDPOINT"`
	LegacyEndpoint  string `env:"INFURA_URL"`
	ContractAddress string `env:"CONTRACT_ADDRESS"`
	PrivateKey      string `env:"PRIVATE_KEY"`
	ChainID         int64  `env:"CHAIN_ID" envDefault:"1"`
	ContractABIPath string `env:"CONTRACT_ABI_PATH" envDefault:"contract_abi.json"`
	GasLimit        uint64 `env:"GAS_LIMIT" envDefault:"200000"`

	Port        string   `env:"PORT" envDefault:"5000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	FrontendDir string   `env:"FRONTEND_DIR" envDefault:"sonic_sentinel/frontend"`

	RiskThreshold int `env:"RISK_THRESHOLD" envDefault:"70"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	DatabaseDSN  string `env:"DATABASE_DSN"`
	JWTSecret    string `env:"JWT_SECRET"`
	OtelEndpoint string `env:"OTEL_ENDPOINT"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Env      string `env:"ENV" envDefault:"development"`
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load parses the process environment into a Config.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given key/value set instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.NodeEndpoint == "" {
		cfg.NodeEndpoint = cfg.LegacyEndpoint
	}
	cfg.PrivateKey = strings.TrimSpace(cfg.PrivateKey)
	return cfg, nil
}

// Warnings lists configuration values that are missing but not fatal.
// The signing key is optional and never reported here.
func (c Config) Warnings() []string {
	var warnings []string
	if c.NodeEndpoint == "" {
		warnings = append(warnings, "NODE_ENDPOINT not set in environment variables")
	}
	if c.ContractAddress == "" {
		warnings = append(warnings, "CONTRACT_ADDRESS not set in environment variables")
	} else if !common.IsHexAddress(c.ContractAddress) {
		warnings = append(warnings, "CONTRACT_ADDRESS is not a valid address: "+c.ContractAddress)
	}
	if c.ChainID <= 0 {
		warnings = append(warnings, "CHAIN_ID must be positive, got "+strconv.FormatInt(c.ChainID, 10))
	}
	return warnings
}

// ContractAddr returns the configured contract address, or false when it is
// unset or not a hex address.
func (c Config) ContractAddr() (common.Address, bool) {
	if !common.IsHexAddress(c.ContractAddress) {
		return common.Address{}, false
	}
	return common.HexToAddress(c.ContractAddress), true
}

// ReadOnly reports whether no signing key is configured.
func (c Config) ReadOnly() bool {
	return c.PrivateKey == ""
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
