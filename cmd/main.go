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

	// Nossos pacotes de infraestrutura e utilitários
	"marmitaria/config"
	_ "marmitaria/docs"
	"marmitaria/internal/pkg/apiclient"
	"marmitaria/internal/pkg/cache"
	"marmitaria/internal/pkg/flash"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/view"

	// Camadas para Injeção de Dependências
	"marmitaria/internal/api/caixa"
	"marmitaria/internal/api/cliente"
	"marmitaria/internal/api/dashboard"
	"marmitaria/internal/api/insumo"
	"marmitaria/internal/api/produto"
	"marmitaria/internal/api/relatorio"
	"marmitaria/internal/api/respond"
	"marmitaria/internal/api/router"
	"marmitaria/internal/api/venda"
	"marmitaria/internal/repository/caixarepo"
	"marmitaria/internal/repository/clienterepo"
	"marmitaria/internal/repository/insumorepo"
	"marmitaria/internal/repository/produtorepo"
	"marmitaria/internal/repository/referenciarepo"
	"marmitaria/internal/repository/vendarepo"
	"marmitaria/internal/service/caixaservice"
	"marmitaria/internal/service/clienteservice"
	"marmitaria/internal/service/dashboardservice"
	"marmitaria/internal/service/insumoservice"
	"marmitaria/internal/service/produtoservice"
	"marmitaria/internal/service/relatorioservice"
	"marmitaria/internal/service/vendaservice"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		// Sem .env seguimos com o ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	log := logger.NewLoggerWithOptions(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "api": cfg.APIBaseURL})

	// 2. Recursos de Infraestrutura

	// A. Cache (Redis, com fallback em memória)
	var cacheClient cache.Client = cache.NewMemoryClient()
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			log.Warn("Redis indisponível; usando cache em memória.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		} else {
			cacheClient = redisClient
			log.Info("Conexão Redis estabelecida.", nil)
		}
	}

	// B. Cliente do backend REST
	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, log)

	// C. Templates
	views, err := view.New()
	if err != nil {
		log.Fatal("Falha ao carregar templates.", err)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	caixaRepo := caixarepo.NewCaixaRepository(api, log)
	clienteRepo := clienterepo.NewClienteRepository(api, log)
	insumoRepo := insumorepo.NewInsumoRepository(api, log)
	produtoRepo := produtorepo.NewProdutoRepository(api, log)
	vendaRepo := vendarepo.NewVendaRepository(api, log)
	referenciaRepo := referenciarepo.NewReferenciaRepository(api, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços
	caixaSvc := caixaservice.NewService(caixaRepo, log)
	clienteSvc := clienteservice.NewService(clienteRepo, log)
	insumoSvc := insumoservice.NewService(insumoRepo, referenciaRepo, log)
	produtoSvc := produtoservice.NewService(produtoRepo, insumoRepo, log)
	vendaSvc := vendaservice.NewService(vendaRepo, produtoRepo, clienteRepo, caixaRepo, log)
	dashboardSvc := dashboardservice.NewService(vendaRepo, produtoRepo, insumoRepo, clienteRepo, caixaRepo, log)
	relatorioSvc := relatorioservice.NewService(vendaRepo, caixaRepo, insumoRepo, produtoRepo, clienteRepo, log)
	log.Debug("Serviços inicializados.", nil)

	// C. Handlers
	resp := respond.New(views, flash.NewStore(cacheClient, cfg.FlashTTL, log), log)
	handlers := router.Handlers{
		Dashboard: dashboard.NewHandler(dashboardSvc, resp, log),
		Caixa:     caixa.NewHandler(caixaSvc, resp, log),
		Vendas:    venda.NewHandler(vendaSvc, resp, log),
		Produtos:  produto.NewHandler(produtoSvc, resp, log),
		Insumos:   insumo.NewHandler(insumoSvc, resp, log),
		Clientes:  cliente.NewHandler(clienteSvc, resp, log),
		Relatorio: relatorio.NewHandler(relatorioSvc, resp, log),
	}
	log.Debug("Handlers inicializados.", nil)

	// 4. Roteador e Servidor
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(handlers, cacheClient, cfg, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.APITimeout + 20*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Painel da Marmitaria ouvindo na porta", map[string]interface{}{"port": cfg.Port})
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

	log.Info("Servidor encerrado com sucesso.", nil)
}
