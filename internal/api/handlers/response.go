package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"

	// maxBodyBytes ограничение размера тела запроса
	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// DecodeJSON читает тело запроса в v. Неизвестные поля и лишние данные после объекта - ошибка.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// RespondJSON пишет v как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErrorKind пишет ошибку вместе с ее типом (validation_error, slot_already_reserved, ...)
func RespondErrorKind(w http.ResponseWriter, status int, kind domain.ErrorKind, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Kind: string(kind)})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondErrorKind(w, http.StatusBadRequest, domain.KindValidation, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondErrorKind(w, http.StatusUnauthorized, domain.KindUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondErrorKind(w, http.StatusForbidden, domain.KindUnauthorized, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondErrorKind(w, http.StatusNotFound, domain.KindNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondErrorKind(w, http.StatusConflict, domain.KindSlotAlreadyReserved, message)
}

// RespondUnavailable 503 с Retry-After: хранилище или провайдер временно недоступны
func RespondUnavailable(w http.ResponseWriter, message string) {
	w.Header().Set("Retry-After", "1")
	RespondErrorKind(w, http.StatusServiceUnavailable, domain.KindStoreUnavailable, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondErrorKind(w, http.StatusInternalServerError, domain.KindInternal, msgInternalError)
}

// StatusFor HTTP статус для типа ошибки
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindSlotAlreadyReserved:
		return http.StatusConflict
	case domain.KindSlotNotFound, domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusForbidden
	case domain.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
