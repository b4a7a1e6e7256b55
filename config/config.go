package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Postgres     PostgresConfig     `mapstructure:"postgres"`
	SessionRedis SessionRedisConfig `mapstructure:"sessionredis"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Game         GameConfig         `mapstructure:"game"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	Host         string   `mapstructure:"host"`
	Description  string   `mapstructure:"description"`
	AllowOrigins []string `mapstructure:"alloworigins"`
}

type PostgresConfig struct {
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

type SessionRedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type GameConfig struct {
	GracePeriod     time.Duration `mapstructure:"graceperiod"`
	SweepInterval   time.Duration `mapstructure:"sweepinterval"`
	InterRoundDelay time.Duration `mapstructure:"interrounddelay"`
	WordTimeout     time.Duration `mapstructure:"wordtimeout"`
	WordSource      string        `mapstructure:"wordsource"` // postgres or static
	CommandRate     float64       `mapstructure:"commandrate"`
	CommandBurst    int           `mapstructure:"commandburst"`

	HTTPRequestsPerMinute int `mapstructure:"httprequestsperminute"`
	HTTPBurst             int `mapstructure:"httpburst"`
}

func Read() Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")
	v.AddConfigPath("/")

	setDefaults(v)

	// ENV overrides with prefix GAME_ and dot-to-underscore replacement
	v.SetEnvPrefix("GAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		zap.L().Warn("Failed to read configuration file", zap.Error(err))
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		zap.L().Error("Configuration could not be parsed", zap.Error(err))
	}

	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "drawguess-service")
	v.SetDefault("app.version", "dev")

	v.SetDefault("server.port", "8082")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.alloworigins", []string{"http://localhost:5173"})

	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.user", "myuser")
	v.SetDefault("postgres.password", "mypassword")
	v.SetDefault("postgres.db", "gamedb")

	v.SetDefault("sessionredis.host", "localhost")
	v.SetDefault("sessionredis.port", "6379")
	v.SetDefault("sessionredis.db", 0)

	v.SetDefault("kafka.enabled", true)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "game-events")

	v.SetDefault("game.graceperiod", 5*time.Minute)
	v.SetDefault("game.sweepinterval", 30*time.Second)
	v.SetDefault("game.interrounddelay", 5*time.Second)
	v.SetDefault("game.wordtimeout", 2*time.Second)
	v.SetDefault("game.wordsource", "postgres")
	v.SetDefault("game.commandrate", 20.0)
	v.SetDefault("game.commandburst", 40)
	v.SetDefault("game.httprequestsperminute", 120)
	v.SetDefault("game.httpburst", 20)
}
