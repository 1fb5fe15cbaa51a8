package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	PostgresDSN     string
	NatsURL         string
	OrderAPIBaseURL string
	CartKey         string
	ClampTotal      bool
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	clampTotal, _ := strconv.ParseBool(os.Getenv("CHECKOUT_CLAMP_TOTAL"))

	AppConfig = &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         redisDB,
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		NatsURL:         getEnv("NATS_URL", "nats://localhost:4222"),
		OrderAPIBaseURL: getEnv("ORDER_API_BASE_URL", "http://localhost:4000"),
		CartKey:         getEnv("CART_KEY", "cart"),
		ClampTotal:      clampTotal,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
