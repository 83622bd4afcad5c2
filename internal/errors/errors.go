package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// AppError é a interface central para todos os erros customizados do painel da Marmitaria.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "API_ERROR", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação dos formulários.
// Fields mapeia o nome do campo para a mensagem exibida ao lado do input.
type ValidationError struct {
	Msg    string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("Erro de Validação: %s", e.Msg)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("Erro de Validação: %s (%s)", e.Msg, strings.Join(parts, "; "))
}
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NewFieldValidationError cria um erro de validação com mensagens por campo.
func NewFieldValidationError(msg string, fields map[string]string) AppError {
	return &ValidationError{Msg: msg, Fields: fields}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de estado (e.g., venda sem caixa aberto).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Erro do Backend REST ---

// ApiError é o único erro que o backend remoto produz para as páginas.
// Status e StatusText vêm da resposta HTTP; Message é extraída do corpo (best effort).
type ApiError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *ApiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API Error: %d %s", e.Status, e.StatusText)
}
func (e *ApiError) Category() string { return "API_ERROR" }
func (e *ApiError) Unwrap() error    { return nil }

// HTTPStatus repassa os 4xx do backend; falhas 5xx do backend viram 502 para o navegador.
func (e *ApiError) HTTPStatus() int {
	if e.Status >= 400 && e.Status < 500 {
		return e.Status
	}
	return http.StatusBadGateway
}

// NewApiError cria um erro a partir da resposta do backend.
func NewApiError(status int, statusText, message string) *ApiError {
	return &ApiError{Status: status, StatusText: statusText, Message: message}
}

// IsApiStatus informa se err (ou algo que ele encapsula) é um ApiError com o status indicado.
func IsApiStatus(err error, status int) bool {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, no transporte ou na renderização.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro de rede)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewTransportError é um atalho para falhas de comunicação com o backend.
func NewTransportError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (backend): %s", msg, err.Error()), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}

// UserMessage devolve o texto exibido na notificação da página, sem o prefixo de categoria.
// O Error() completo fica para os logs.
func UserMessage(err error) string {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Msg
	}
	var conflito *ConflictError
	if errors.As(err, &conflito) {
		return conflito.Msg
	}
	var naoEncontrado *NotFoundError
	if errors.As(err, &naoEncontrado) {
		return naoEncontrado.Msg
	}
	_, _, msg := MapToHTTPStatus(err)
	return msg
}
