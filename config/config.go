package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações do painel da Marmitaria.
type Config struct {
	// Geral
	Port        string
	Environment string

	// Logs
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	// Backend REST (toda a persistência mora lá)
	APIBaseURL string
	APITimeout time.Duration

	// Cache (Redis). Vazio usa o cache em memória.
	RedisAddr    string
	CacheTimeout time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Notificações (flash) exibidas após um redirect
	FlashTTL time.Duration
}

const defaultAPIBaseURL = "http://localhost:8080"

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENV", "development"),

		// 2. Logs
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getIntEnv("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getIntEnv("LOG_MAX_BACKUPS", 3),

		// 3. Backend REST
		// API_BASE_URL tem precedência; NEXT_PUBLIC_API_URL é aceito para reaproveitar o .env do front antigo.
		APIBaseURL: strings.TrimRight(getEnv("API_BASE_URL", getEnv("NEXT_PUBLIC_API_URL", defaultAPIBaseURL)), "/"),
		APITimeout: getDurationEnv("API_TIMEOUT_SEC", 10) * time.Second, // 10s padrão

		// 4. Cache (Redis)
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 5) * time.Second,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 300),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute, // 1 min padrão

		// 6. Flash
		FlashTTL: getDurationEnv("FLASH_TTL_SEC", 60) * time.Second,
	}

	if cfg.APIBaseURL == "" {
		log.Printf("⚠️ Aviso: API_BASE_URL vazio. Usando padrão (%s).", defaultAPIBaseURL)
		cfg.APIBaseURL = defaultAPIBaseURL
	}

	return cfg
}

// IsProduction indica se o painel roda em produção.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
