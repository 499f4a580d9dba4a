package herald

import (
	"fmt"
	"time"
)

// Queue transports a deferred task can travel through.
const (
	QueueQStash = "qstash"
	QueueRedis  = "redis"
	QueueMemory = "memory"
)

// Config holds the process configuration. It is loaded once at startup and passed down
// explicitly; nothing reads the environment after that.
type Config struct {
	PublicKey     string `env:"DISCORD_PUBLIC_KEY"`
	BotToken      string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"DISCORD_APPLICATION_ID"`

	QueueToken string `env:"QSTASH_TOKEN"`
	QueueURL   string `env:"QUEUE_WEBHOOK_URL"`
	Queue      string `env:"HERALD_QUEUE" envDefault:"qstash"`

	Addr      string `env:"HERALD_ADDR" envDefault:":8080"`
	LogLevel  string `env:"HERALD_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"HERALD_LOG_FORMAT" envDefault:"text"`

	PublishTimeout time.Duration `env:"HERALD_PUBLISH_TIMEOUT" envDefault:"2s"`
	AsyncPublish   bool          `env:"HERALD_ASYNC_PUBLISH"`

	WorkerToken        string        `env:"HERALD_WORKER_TOKEN"`
	RedeliverOnFailure bool          `env:"HERALD_REDELIVER_ON_FAILURE"`
	ClaimTTL           time.Duration `env:"HERALD_CLAIM_TTL" envDefault:"15m"`

	Redis RedisConfig `envPrefix:"HERALD_REDIS_"`
}

// RedisConfig locates the Redis server used for the completion ledger and the redis queue.
type RedisConfig struct {
	Addr        string `env:"ADDR"`
	Password    string `env:"PASSWORD"`
	DB          int    `env:"DB" envDefault:"0"`
	Prefix      string `env:"PREFIX" envDefault:"herald:"`
	MaxAttempts int    `env:"MAX_ATTEMPTS" envDefault:"5"`
}

// Validate reports configuration that cannot work.
// A missing public key is reported as domain.ErrMissingPublicKey by New, not here.
func (c Config) Validate() error {
	switch c.Queue {
	case QueueQStash, QueueRedis, QueueMemory:
	default:
		return fmt.Errorf("unknown queue %q (want %s, %s or %s)", c.Queue, QueueQStash, QueueRedis, QueueMemory)
	}
	if c.Queue == QueueRedis && c.Redis.Addr == "" {
		return fmt.Errorf("queue %q requires HERALD_REDIS_ADDR", QueueRedis)
	}
	if c.PublishTimeout < 0 {
		return fmt.Errorf("publish timeout must not be negative")
	}
	return nil
}
