package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"psstock/config"
	"psstock/internal/api/router"
	"psstock/internal/api/stock"
	"psstock/internal/pkg/cache"
	"psstock/internal/pkg/logger"
	"psstock/internal/pkg/middleware"
	"psstock/internal/pkg/telemetry"
	"psstock/internal/prestashop"
	"psstock/internal/service/stockservice"
)

func main() {
	// 0. Variáveis de ambiente (.env é opcional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("⚡ Inicializando psstock...", map[string]interface{}{"env": cfg.Environment})

	if missing := cfg.Validate(); len(missing) > 0 {
		// Não impede a subida: as consultas vão falhar com 500 até a configuração ser corrigida.
		log.Warn("Configuração do PrestaShop incompleta.", map[string]interface{}{"missing": missing})
	}

	// 2. Observabilidade
	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("Falha ao inicializar o tracer.", err)
	}

	// 3. Injeção de dependências: Client -> Service -> Handler
	psClient := prestashop.NewClient(cfg.PrestaShopURL, cfg.PrestaShopWSKey, cfg.UpstreamTimeout, log)
	stockSvc := stockservice.NewService(psClient, log)
	stockHandler := stock.NewHandler(stockSvc, log)
	log.Debug("Handler de Estoque inicializado.", nil)

	routes := router.Options{
		Global: []router.Middleware{middleware.RequestID, middleware.AccessLog(log), middleware.Recover(log)},
	}

	// Rate limiting só com Redis configurado
	if cfg.RedisAddr != "" {
		cacheClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Warn("Redis não respondeu ao PING; o rate limiter vai liberar as requisições até ele voltar.", map[string]interface{}{
				"addr":  cfg.RedisAddr,
				"error": err.Error(),
			})
		} else {
			log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		}
		defer cacheClient.Close()
		// O limitador só envolve /stock: o /health responde sempre.
		routes.Stock = append(routes.Stock, middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log))
	}

	// 4. Roteador e Servidor
	r := router.NewRouter(stockHandler, routes)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if cfg.UpstreamTimeout == 0 {
		// Sem timeout do upstream, o WriteTimeout cortaria respostas lentas porém válidas.
		server.WriteTimeout = 0
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("stock-api ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Error("Falha ao encerrar o tracer.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
