package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
)

type Config struct {
	Env         string
	HTTPServer  HTTPServer
	Database    Database
	Storage     Storage
	Cache       Cache
	Auth        Auth
	UserService UserService
	Prometheus  Prometheus
	Redis       Redis
	Posts       Posts
}

type HTTPServer struct {
	Address      string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Database struct {
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsPath string
	MaxConns       int32
}

type Storage struct {
	Driver string
}

type Cache struct {
	Driver   string
	MaxItems int
	PostTTL  time.Duration
	UserTTL  time.Duration
}

type Auth struct {
	JWTSecret string
}

type UserService struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
}

type Prometheus struct {
	Address string
	Port    int
}

type Redis struct {
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type Posts struct {
	DefaultDraft     bool
	PopularLimit     int
	MaxPopularLimit  int
	DefaultListLimit int
	MaxListLimit     int
}

func MustLoad() *Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("devlog")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 8001)
	viper.SetDefault("http_server.read_timeout", "10s")
	viper.SetDefault("http_server.write_timeout", "15s")
	viper.SetDefault("http_server.idle_timeout", "60s")

	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "admin")
	viper.SetDefault("database.host", "post-db")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "devlog")
	viper.SetDefault("database.migrations_path", "migrations")
	viper.SetDefault("database.max_conns", 10)

	viper.SetDefault("storage.driver", StorageDriverPostgres)

	viper.SetDefault("cache.driver", CacheDriverRedis)
	viper.SetDefault("cache.max_items", 10000)
	viper.SetDefault("cache.post_ttl", "30m")
	viper.SetDefault("cache.user_ttl", "15m")

	viper.SetDefault("auth.jwt_secret", "")

	viper.SetDefault("user_service.base_url", "http://user-service:8002")
	viper.SetDefault("user_service.timeout", "3s")
	viper.SetDefault("user_service.retry_max", 2)

	viper.SetDefault("prometheus.address", "0.0.0.0")
	viper.SetDefault("prometheus.port", 9103)

	viper.SetDefault("redis.address", "redis")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("posts.default_draft", false)
	viper.SetDefault("posts.popular_limit", 10)
	viper.SetDefault("posts.max_popular_limit", 50)
	viper.SetDefault("posts.default_list_limit", 20)
	viper.SetDefault("posts.max_list_limit", 100)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %s", err)
			os.Exit(1)
		}
		log.Printf("Config file not found, using defaults and environment")
	}

	config := &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address:      viper.GetString("http_server.address"),
			Port:         viper.GetInt("http_server.port"),
			ReadTimeout:  viper.GetDuration("http_server.read_timeout"),
			WriteTimeout: viper.GetDuration("http_server.write_timeout"),
			IdleTimeout:  viper.GetDuration("http_server.idle_timeout"),
		},
		Database: Database{
			Username:       viper.GetString("database.username"),
			Password:       viper.GetString("database.password"),
			Host:           viper.GetString("database.host"),
			Port:           viper.GetString("database.port"),
			DbName:         viper.GetString("database.db_name"),
			MigrationsPath: viper.GetString("database.migrations_path"),
			MaxConns:       viper.GetInt32("database.max_conns"),
		},
		Storage: Storage{
			Driver: viper.GetString("storage.driver"),
		},
		Cache: Cache{
			Driver:   viper.GetString("cache.driver"),
			MaxItems: viper.GetInt("cache.max_items"),
			PostTTL:  viper.GetDuration("cache.post_ttl"),
			UserTTL:  viper.GetDuration("cache.user_ttl"),
		},
		Auth: Auth{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		UserService: UserService{
			BaseURL:  viper.GetString("user_service.base_url"),
			Timeout:  viper.GetDuration("user_service.timeout"),
			RetryMax: viper.GetInt("user_service.retry_max"),
		},
		Prometheus: Prometheus{
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
		Redis: Redis{
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		Posts: Posts{
			DefaultDraft:     viper.GetBool("posts.default_draft"),
			PopularLimit:     viper.GetInt("posts.popular_limit"),
			MaxPopularLimit:  viper.GetInt("posts.max_popular_limit"),
			DefaultListLimit: viper.GetInt("posts.default_list_limit"),
			MaxListLimit:     viper.GetInt("posts.max_list_limit"),
		},
	}

	if config.Auth.JWTSecret == "" {
		log.Printf("auth.jwt_secret must be set")
		os.Exit(1)
	}

	return config
}

func (d Database) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.DbName)
}
