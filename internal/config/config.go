package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"MURP_ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	DBUser     string `yaml:"db_user" env:"MURP_DB_USER" env-required:"true"`
	DBPassword string `yaml:"db_password" env:"MURP_DB_PASSWORD" env-default:""`
	DBHost     string `yaml:"db_host" env:"MURP_DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"MURP_DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"MURP_DB_NAME" env-required:"true"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`

	Planning Planning `yaml:"planning"`

	AdminLogin string `yaml:"admin_login" env:"MURP_ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"MURP_ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Planning holds the defaults the engine is called with; the API can override
// horizon per request.
type Planning struct {
	TargetBatchDays int `yaml:"target_batch_days" env-default:"30"`
	HorizonWeeks    int `yaml:"horizon_weeks" env-default:"13"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config %s: %s", configPath, err)
	}

	return &cfg
}
