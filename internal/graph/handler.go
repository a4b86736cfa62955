package graph

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/graphql-go/graphql"
)

const maxQueryBodySize = 1 << 20

// Request - тело GraphQL-запроса.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler выполняет GraphQL-запросы по HTTP.
// Пользователь берется из контекста, его кладет middleware.OptionalAuthenticator.
type Handler struct {
	schema graphql.Schema
}

// NewHandler создает Handler со схемой поверх переданных сервисов.
func NewHandler(svc Services) (*Handler, error) {
	schema, err := NewSchema(svc)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema}, nil
}

// ServeHTTP обрабатывает POST /graphql.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		log.Printf("[GraphQL] Неверное тело запроса: %v", err)
		writeResult(w, http.StatusBadRequest, &graphql.Result{
			Errors: badRequestErrors("Неверное тело GraphQL-запроса"),
		})
		return
	}

	result := h.Execute(r, req)
	writeResult(w, http.StatusOK, result)
}

// Execute выполняет запрос в контексте HTTP-запроса.
func (h *Handler) Execute(r *http.Request, req Request) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
	if result.HasErrors() {
		log.Printf("[GraphQL] Запрос %q завершился с ошибками: %d", req.OperationName, len(result.Errors))
	}
	return result
}

func writeResult(w http.ResponseWriter, status int, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("[GraphQL] Ошибка кодирования ответа: %v", err)
	}
}
