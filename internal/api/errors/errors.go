// Пакет errors — запись HTTP-ошибок picodrop.
// Все ответы с ошибками — короткие plain-text сообщения без
// внутренних путей и стек-трейсов; детали логируются на сервере.
package errors //nolint:revive // конфликт имени со stdlib допустим внутри internal/api

import (
	"io"
	"net/http"
)

// WriteError записывает plain-text ответ ошибки.
// statusCode — HTTP статус-код, message — короткое описание для клиента.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, message)
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
