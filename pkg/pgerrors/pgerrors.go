// Package pgerrors classifies PostgreSQL driver errors by SQLSTATE.
package pgerrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// transientClasses классы SQLSTATE, после которых запрос можно повторить:
// 08 - ошибки соединения, 53 - нехватка ресурсов, 57 - вмешательство оператора
var transientClasses = map[pq.ErrorClass]struct{}{
	"08": {},
	"53": {},
	"57": {},
}

// IsUniqueViolation возвращает true для нарушения уникальности.
// Если передан constraint, дополнительно сверяет имя ограничения.
func IsUniqueViolation(err error, constraint ...string) bool {
	pqErr, ok := asPQ(err)
	if !ok || pqErr.Code != codeUniqueViolation {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if pqErr.Constraint == c {
			return true
		}
	}
	return false
}

// IsCheckViolation возвращает true для нарушения CHECK ограничения
func IsCheckViolation(err error) bool {
	pqErr, ok := asPQ(err)
	return ok && pqErr.Code == codeCheckViolation
}

// IsForeignKeyViolation возвращает true для нарушения внешнего ключа
func IsForeignKeyViolation(err error) bool {
	pqErr, ok := asPQ(err)
	return ok && pqErr.Code == codeForeignKeyViolation
}

// IsTransient возвращает true для ошибок, после которых операцию можно повторить:
// потеря соединения, конфликт сериализации, дедлок, сетевые ошибки.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if pqErr, ok := asPQ(err); ok {
		if pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected {
			return true
		}
		_, transient := transientClasses[pqErr.Code.Class()]
		return transient
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func asPQ(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}
