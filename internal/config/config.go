package config

import (
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/paytrack/ledger-gateway/pkg/logger"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every env-driven value used by the module. Only this
// struct may be used to read configuration; no direct env access
// anywhere else.
type Config struct {
	AppEnv   string `env:"APP_ENV,default=dev"`
	AppName  string `env:"APP_NAME,default=ledger_gateway"`
	AppDebug bool   `env:"APP_DEBUG,default=true"`

	DatabasePath string `env:"DATABASE_PATH,default=data/ledger.db"`

	OpsListenAddr string `env:"OPS_LISTEN_ADDR,default=:9091"`
	PromNamespace string `env:"PROM_NAMESPACE,default=ledger"`

	LogRetentionDays int           `env:"LOG_RETENTION_DAYS,default=30"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL,default=1h"`

	ReportPageSize int `env:"REPORT_PAGE_SIZE,default=5"`
	SearchLimit    int `env:"SEARCH_LIMIT,default=5"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.New("failed to map env variables to Configuration object error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("config is not initialized")
	}
	return config
}
