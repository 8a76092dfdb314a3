package config

import "os"

// GetEnv reads an environment variable with a fallback default.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func MongoURI() string {
	return GetEnv("MONGO_URI", "mongodb://localhost:27017")
}

func MongoDatabase() string {
	return GetEnv("MONGO_DB", "digital-menu")
}

func RedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func JWTSecret() string {
	return GetEnv("JWT_SECRET", "secret")
}
