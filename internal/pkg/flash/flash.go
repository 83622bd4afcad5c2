// Package flash guarda as notificações exibidas depois de um redirect (POST -> redirect -> GET).
// O navegador só carrega o id da sessão no cookie; o conteúdo fica no cache.
package flash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/cache"
	"marmitaria/internal/pkg/logger"
)

const (
	CookieName = "marmitaria_flash"
	keyPrefix  = "flash:"
)

// Store lê e grava notificações por sessão.
type Store struct {
	cache  cache.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(c cache.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{cache: c, ttl: ttl, logger: log}
}

// Add anexa a notificação à sessão do navegador, criando o cookie se preciso.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, n domain.Notificacao) {
	id := sessionID(r)
	if id == "" {
		id = uuid.NewString()
		c := &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		http.SetCookie(w, c)
		// Próximos Add na mesma requisição reutilizam a sessão.
		r.AddCookie(c)
	}

	ctx := r.Context()
	atuais := s.load(ctx, id)
	atuais = append(atuais, n)

	b, err := json.Marshal(atuais)
	if err != nil {
		s.logger.Error("Falha ao serializar notificação.", err)
		return
	}
	if err := s.cache.Set(ctx, keyPrefix+id, string(b), s.ttl); err != nil {
		// Sem cache a notificação se perde, mas a operação já foi concluída.
		s.logger.Warn("Falha ao gravar notificação.", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Store) Sucesso(w http.ResponseWriter, r *http.Request, titulo, descricao string) {
	s.Add(w, r, domain.Notificacao{Nivel: domain.NotificacaoSucesso, Titulo: titulo, Descricao: descricao})
}

func (s *Store) Erro(w http.ResponseWriter, r *http.Request, titulo, descricao string) {
	s.Add(w, r, domain.Notificacao{Nivel: domain.NotificacaoErro, Titulo: titulo, Descricao: descricao})
}

func (s *Store) Aviso(w http.ResponseWriter, r *http.Request, titulo, descricao string) {
	s.Add(w, r, domain.Notificacao{Nivel: domain.NotificacaoAviso, Titulo: titulo, Descricao: descricao})
}

// Pop devolve e descarta as notificações pendentes da sessão.
func (s *Store) Pop(r *http.Request) []domain.Notificacao {
	id := sessionID(r)
	if id == "" {
		return nil
	}
	ctx := r.Context()
	n := s.load(ctx, id)
	if len(n) > 0 {
		if err := s.cache.Delete(ctx, keyPrefix+id); err != nil {
			s.logger.Warn("Falha ao descartar notificações.", map[string]interface{}{"error": err.Error()})
		}
	}
	return n
}

func (s *Store) load(ctx context.Context, id string) []domain.Notificacao {
	raw, err := s.cache.Get(ctx, keyPrefix+id)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Falha ao ler notificações.", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}
	var out []domain.Notificacao
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("Notificações corrompidas descartadas.", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return out
}

// sessionID aceita apenas uuids; qualquer outro valor é tratado como ausente.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}
