// Package respond concentra o que todo handler do painel faz: responder HTML ou JSON,
// traduzir erros e aplicar o padrão POST -> notificação -> redirect.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/flash"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/view"
)

// Responder é compartilhado por todos os handlers.
type Responder struct {
	View   *view.Engine
	Flash  *flash.Store
	Logger logger.Logger
}

func New(v *view.Engine, f *flash.Store, log logger.Logger) *Responder {
	return &Responder{View: v, Flash: f, Logger: log}
}

// WantsJSON: a mesma rota serve a página HTML e os dados em JSON.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") || JSONBody(r)
}

// JSONBody informa se a requisição enviou JSON (chamadas de API em vez de formulário).
func JSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// Base lê da query string o estado comum da página: modais abertos, busca e item selecionado.
func Base(r *http.Request) domain.Pagina {
	q := r.URL.Query()
	id, _ := strconv.Atoi(q.Get("id"))
	return domain.Pagina{
		Modais:        domain.NovasModais(q["modal"]...),
		Busca:         q.Get("busca"),
		SelecionadoID: id,
	}
}

// PathID lê o {id} da rota.
func PathID(r *http.Request, param string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("ID inválido.")
	}
	return id, nil
}

// JSON escreve data com o status informado.
func (rs *Responder) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz o erro para {code, category, message}.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, category := rs.logErro(r, err)
	rs.JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  apperror.UserMessage(err),
	})
}

func (rs *Responder) logErro(r *http.Request, err error) (int, string) {
	status, category, _ := apperror.MapToHTTPStatus(err)
	if status >= 500 {
		rs.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		rs.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category),
			map[string]interface{}{"path": r.URL.Path, "error": err.Error()})
	}
	return status, category
}

// Pagina responde um GET de página. Se o carregamento falhou, a página é exibida em estado de erro
// com a notificação tituloErro; em JSON, a falha vira o corpo de erro padrão.
func (rs *Responder) Pagina(w http.ResponseWriter, r *http.Request, nome, titulo string,
	base *domain.Pagina, dados interface{}, err error, tituloErro string) {
	if WantsJSON(r) {
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, dados)
		return
	}

	if base == nil {
		base = &domain.Pagina{}
	}
	status := http.StatusOK
	base.Notificacoes = append(base.Notificacoes, rs.Flash.Pop(r)...)
	if err != nil {
		status, _ = rs.logErro(r, err)
		base.Estado = domain.EstadoErro
		base.Notificacoes = append(base.Notificacoes, domain.Notificacao{
			Nivel:     domain.NotificacaoErro,
			Titulo:    tituloErro,
			Descricao: apperror.UserMessage(err),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if rerr := rs.View.Render(w, nome, view.Dados{Titulo: titulo, Ativo: nome, Pagina: dados, Base: base}); rerr != nil {
		rs.Logger.Error("Falha ao renderizar página.", rerr)
	}
}

// Sucesso conclui uma ação: JSON com o recurso, ou notificação e redirect para destino.
func (rs *Responder) Sucesso(w http.ResponseWriter, r *http.Request, status int, data interface{},
	destino, titulo, descricao string) {
	if WantsJSON(r) {
		rs.JSON(w, status, data)
		return
	}
	rs.Flash.Sucesso(w, r, titulo, descricao)
	http.Redirect(w, r, destino, http.StatusSeeOther)
}

// Aviso acrescenta um alerta sem interromper a ação (só no HTML).
func (rs *Responder) Aviso(w http.ResponseWriter, r *http.Request, titulo, descricao string) {
	if WantsJSON(r) || descricao == "" {
		return
	}
	rs.Flash.Aviso(w, r, titulo, descricao)
}

// Falha conclui uma ação com erro. Erros de validação usam tituloValidacao (quando informado);
// os demais usam titulo. No HTML, volta para destino (em geral reabrindo o modal).
func (rs *Responder) Falha(w http.ResponseWriter, r *http.Request, err error, titulo, tituloValidacao, destino string) {
	if WantsJSON(r) {
		rs.Error(w, r, err)
		return
	}
	rs.logErro(r, err)
	var vErr *apperror.ValidationError
	if tituloValidacao != "" && errors.As(err, &vErr) {
		titulo = tituloValidacao
	}
	rs.Flash.Erro(w, r, titulo, apperror.UserMessage(err))
	http.Redirect(w, r, destino, http.StatusSeeOther)
}

// ComModal monta a URL de volta para a página com um modal aberto.
func ComModal(pagina, modal string, id int) string {
	q := url.Values{}
	q.Set("modal", modal)
	if id > 0 {
		q.Set("id", strconv.Itoa(id))
	}
	return pagina + "?" + q.Encode()
}

// Mesclar aplica à página carregada o estado vindo da URL (modais, busca e seleção).
func Mesclar(dst *domain.Pagina, base domain.Pagina) {
	dst.Modais = base.Modais
	dst.Busca = base.Busca
	dst.SelecionadoID = base.SelecionadoID
	dst.Notificacoes = append(dst.Notificacoes, base.Notificacoes...)
}

// Selecionar informa se a URL pede um item específico para um dos modais de item.
func Selecionar(base domain.Pagina) bool {
	m := base.Modais
	return base.SelecionadoID > 0 && (m.Editar || m.Visualizar || m.Excluir || m.ForcarExclusao)
}

// NotificarErro acrescenta uma notificação de erro à página sem mudar o seu estado.
func NotificarErro(p *domain.Pagina, titulo string, err error) {
	p.Notificacoes = append(p.Notificacoes, domain.Notificacao{
		Nivel:     domain.NotificacaoErro,
		Titulo:    titulo,
		Descricao: apperror.UserMessage(err),
	})
}
