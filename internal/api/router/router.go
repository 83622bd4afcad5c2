package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"marmitaria/config"
	"marmitaria/internal/api/caixa"
	"marmitaria/internal/api/cliente"
	"marmitaria/internal/api/dashboard"
	"marmitaria/internal/api/insumo"
	"marmitaria/internal/api/produto"
	"marmitaria/internal/api/relatorio"
	"marmitaria/internal/api/venda"
	"marmitaria/internal/pkg/cache"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Dashboard *dashboard.Handler
	Caixa     *caixa.Handler
	Vendas    *venda.Handler
	Produtos  *produto.Handler
	Insumos   *insumo.Handler
	Clientes  *cliente.Handler
	Relatorio *relatorio.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, cacheClient cache.Client, cfg *config.Config, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log))

	// --- 2. Health check e documentação ---
	r.Get("/ping", PingHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 3. Páginas ---
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	r.Get("/login", h.Dashboard.LoginHandler)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.Dashboard.PaginaHandler)
		r.Route("/caixa", h.Caixa.MountRoutes)
		r.Route("/vendas", h.Vendas.MountRoutes)
		r.Route("/produtos", h.Produtos.MountRoutes)
		r.Route("/insumos", h.Insumos.MountRoutes)
		r.Route("/clientes", h.Clientes.MountRoutes)
		r.Route("/relatorios", h.Relatorio.MountRoutes)
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
