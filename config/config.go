package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do psstock.
// É lida uma única vez na inicialização e tratada como imutável depois disso.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Webservice do PrestaShop
	PrestaShopURL   string
	PrestaShopWSKey string
	UpstreamTimeout time.Duration // 0 = sem limite explícito (padrão do transporte)

	// Rate Limiting (Redis). RedisAddr vazio desliga o limitador.
	RedisAddr            string
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Observabilidade (OpenTelemetry)
	OTLPEndpoint string
	ServiceName  string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "3005"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. PrestaShop
		// Não usamos mustGetEnv: a ausência é só um aviso (ver Validate).
		PrestaShopURL:   getEnv("PRESTASHOP_URL", ""),
		PrestaShopWSKey: getEnv("PRESTASHOP_WS_KEY", ""),
		UpstreamTimeout: getDurationEnv("UPSTREAM_TIMEOUT_SEC", 0) * time.Second,

		// 3. Rate Limiting
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute, // 1 min padrão

		// 4. Observabilidade
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("SERVICE_NAME", "psstock"),
	}

	return cfg
}

// Validate lista as variáveis obrigatórias do PrestaShop que estão ausentes.
// O processo sobe mesmo assim; as requisições falham com 500 até a correção.
func (c *Config) Validate() []string {
	var missing []string
	if c.PrestaShopURL == "" {
		missing = append(missing, "PRESTASHOP_URL")
	}
	if c.PrestaShopWSKey == "" {
		missing = append(missing, "PRESTASHOP_WS_KEY")
	}
	return missing
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
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
