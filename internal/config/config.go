package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	errorsUtils "github.com/Egor213/ProbeTrap/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		HTTP       `yaml:"http"`
		Static     `yaml:"static"`
		Store      `yaml:"store"`
		Prometheus `yaml:"prometheus"`
		Kafka      `yaml:"kafka"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"probetrap"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	}

	HTTP struct {
		Host           string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
		Port           string        `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
		ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
		WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
		RequestTimeout time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"30s"`
	}

	Static struct {
		Dir        string `yaml:"dir" env:"STATIC_DIR" env-default:"src"`
		Sentinel   string `yaml:"sentinel" env:"STATIC_SENTINEL" env-default:"ok.png"`
		TrapMarker string `yaml:"trap_marker" env:"STATIC_TRAP_MARKER" env-default:"verify_"`
	}

	Store struct {
		Path        string        `yaml:"path" env:"STORE_PATH" env-default:"url_log.db"`
		BusyTimeout time.Duration `yaml:"busy_timeout" env:"STORE_BUSY_TIMEOUT" env-default:"5s"`
		JournalMode string        `yaml:"journal_mode" env:"STORE_JOURNAL_MODE"`
		LogRequests bool          `yaml:"log_requests" env:"STORE_LOG_REQUESTS" env-default:"false"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT"`
	}

	Kafka struct {
		Brokers      []string      `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic        string        `yaml:"topic" env:"KAFKA_TOPIC" env-default:"trap-hits"`
		BatchTimeout time.Duration `yaml:"batch_timeout" env:"KAFKA_BATCH_TIMEOUT" env-default:"10ms"`
	}
)

const (
	ENV_PATH            = "infra/.env.dev"
	DEFAULT_CONFIG_PATH = "infra/config.yaml"
)

func loadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		log.WithField("path", path).Debugf("Env file is not loaded: %v", err)
	}
}

func New() (*Config, error) {
	loadEnvFile(ENV_PATH)

	cfg := &Config{}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Info("Config path is not set, using default")
		pathToConfig = DEFAULT_CONFIG_PATH
	}

	if _, err := os.Stat(pathToConfig); errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", pathToConfig).Info("Config file not found, reading env only")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(pathToConfig, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}
