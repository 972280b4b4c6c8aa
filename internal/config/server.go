package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	JWTSecret     string `env:"JWT_SECRET,required,notEmpty"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"72"`

	PaymentBaseURL     string `env:"PAYMENT_BASE_URL"`
	PaymentAPIKey      string `env:"PAYMENT_API_KEY"`
	PaymentTimeoutSecs int    `env:"PAYMENT_TIMEOUT_SECONDS" envDefault:"10"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	SMTPFrom string `env:"SMTP_FROM"`

	NotifyQueueSize   int `env:"NOTIFY_QUEUE_SIZE" envDefault:"256"`
	NotifyTimeoutSecs int `env:"NOTIFY_TIMEOUT_SECONDS" envDefault:"10"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
