package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	StateFile        string `mapstructure:"STATE_FILE"`

	TickInterval time.Duration `mapstructure:"TICK_INTERVAL"`
	RetryDelay   time.Duration `mapstructure:"RETRY_DELAY"`
	CancelWindow time.Duration `mapstructure:"CANCEL_WINDOW"`

	CallGatewayURL  string `mapstructure:"CALL_GATEWAY_URL"`
	CallWebhookPort int    `mapstructure:"CALL_WEBHOOK_PORT"`
	MetricsPort     int    `mapstructure:"METRICS_PORT"`

	SendRateLimit int `mapstructure:"SEND_RATE_LIMIT"`

	ExternalRequestTimeout time.Duration `mapstructure:"EXTERNAL_REQUEST_TIMEOUT"`

	RetryCount           int           `mapstructure:"RETRY_COUNT"`
	RetryBackoff         time.Duration `mapstructure:"RETRY_BACKOFF"`
	RetryableStatusCodes []int         `mapstructure:"RETRYABLE_STATUS_CODES"`

	CBSlidingWindowSize        int           `mapstructure:"CB_SLIDING_WINDOW_SIZE"`
	CBMinimumRequiredCalls     int           `mapstructure:"CB_MINIMUM_REQUIRED_CALLS"`
	CBFailureRateThreshold     int           `mapstructure:"CB_FAILURE_RATE_THRESHOLD"`
	CBPermittedCallsInHalfOpen int           `mapstructure:"CB_PERMITTED_CALLS_IN_HALF_OPEN"`
	CBWaitDurationInOpenState  time.Duration `mapstructure:"CB_WAIT_DURATION_IN_OPEN_STATE"`
}

func LoadConfig() *Config {
	setDefaults()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return getDefaultConfig()
	}

	return config
}

func setDefaults() {
	viper.SetDefault("STATE_FILE", "bed_caller.json")

	viper.SetDefault("TICK_INTERVAL", "1s")
	viper.SetDefault("RETRY_DELAY", "300s")
	viper.SetDefault("CANCEL_WINDOW", "3600s")

	viper.SetDefault("CALL_GATEWAY_URL", "http://call_gateway:8090")
	viper.SetDefault("CALL_WEBHOOK_PORT", 8082)
	viper.SetDefault("METRICS_PORT", 9094)

	viper.SetDefault("SEND_RATE_LIMIT", 25)

	viper.SetDefault("EXTERNAL_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("RETRY_COUNT", 3)
	viper.SetDefault("RETRY_BACKOFF", "1s")
	viper.SetDefault("RETRYABLE_STATUS_CODES", []int{408, 429, 500, 502, 503, 504})

	viper.SetDefault("CB_SLIDING_WINDOW_SIZE", 10)
	viper.SetDefault("CB_MINIMUM_REQUIRED_CALLS", 5)
	viper.SetDefault("CB_FAILURE_RATE_THRESHOLD", 50)
	viper.SetDefault("CB_PERMITTED_CALLS_IN_HALF_OPEN", 2)
	viper.SetDefault("CB_WAIT_DURATION_IN_OPEN_STATE", "10s")
}

func getDefaultConfig() *Config {
	return &Config{
		StateFile: "bed_caller.json",

		TickInterval: 1 * time.Second,
		RetryDelay:   300 * time.Second,
		CancelWindow: 3600 * time.Second,

		CallGatewayURL:  "http://call_gateway:8090",
		CallWebhookPort: 8082,
		MetricsPort:     9094,

		SendRateLimit: 25,

		ExternalRequestTimeout: 10 * time.Second,

		RetryCount:           3,
		RetryBackoff:         1 * time.Second,
		RetryableStatusCodes: []int{408, 429, 500, 502, 503, 504},

		CBSlidingWindowSize:        10,
		CBMinimumRequiredCalls:     5,
		CBFailureRateThreshold:     50,
		CBPermittedCallsInHalfOpen: 2,
		CBWaitDurationInOpenState:  10 * time.Second,
	}
}
