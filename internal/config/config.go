package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Club   Club
	Gemini Gemini
	FCM    FCM
	Log    Log
}

type Club struct {
	Name string `envconfig:"CLUB_NAME" default:"CHM FC"`
}

// Gemini drafting is disabled when APIKey is empty
type Gemini struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
	Model  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// FCM push notifications are disabled when the credentials file is missing
type FCM struct {
	CredentialsFile string `envconfig:"FCM_CREDENTIALS_FILE" default:"serviceAccountKey.json"`
	OrderLink       string `envconfig:"FCM_ORDER_LINK"`
}

type Log struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// New reads an optional .env file and then the process environment
func New() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// NewLogger builds the production zap logger at the configured level
func (l Log) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", l.Level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	return config.Build()
}
