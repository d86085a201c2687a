package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	CatalogDBPath         string
	CatalogMigrationsPath string
	ProductCacheSize      int

	KafkaBrokers []string

	OrdersDBHost         string
	OrdersDBPort         int
	OrdersDBUser         string
	OrdersDBPassword     string
	OrdersDBName         string
	OrdersMigrationsPath string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, with a .env file as
// an optional local override source.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort: getenv("HTTP_PORT", "8082"),

		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getenv("MONGO_DB_NAME", "qkart"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		CatalogDBPath:         getenv("CATALOG_DB_PATH", "catalog.db"),
		CatalogMigrationsPath: getenv("CATALOG_MIGRATIONS_PATH", "migrations/catalog"),
		ProductCacheSize:      getenvInt("PRODUCT_CACHE_SIZE", 512),

		KafkaBrokers: strings.Split(getenv("KAFKA_BROKERS", "localhost:9092"), ","),

		OrdersDBHost:         getenv("ORDERS_DB_HOST", "localhost"),
		OrdersDBPort:         getenvInt("ORDERS_DB_PORT", 5432),
		OrdersDBUser:         getenv("ORDERS_DB_USER", "postgres"),
		OrdersDBPassword:     getenv("ORDERS_DB_PASSWORD", "postgres"),
		OrdersDBName:         getenv("ORDERS_DB_NAME", "qkart_orders"),
		OrdersMigrationsPath: getenv("ORDERS_MIGRATIONS_PATH", "migrations/orders"),

		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getenvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
