package rsql

import (
	"fmt"
	"strings"
)

// ErrorType 定义错误类型
type ErrorType int

const (
	ErrorTypeMissingClause ErrorType = iota
	ErrorTypeJoin
	ErrorTypeWhere
	ErrorTypeInvalidHaving
	ErrorTypeHaving
	ErrorTypeOrderBy
	ErrorTypeInvalidNumber
)

// Error messages, one per failure condition.
const (
	msgMissingColumns = "Missing columns in SELECT clause."
	msgMissingFrom    = "Missing FROM clause."
	msgJoin           = "Unable to parse JOIN clause."
	msgWhere          = "Unable to parse WHERE clause."
	msgInvalidHaving  = "Invalid HAVING clause format for condition: "
	msgHaving         = "Unable to parse HAVING clause."
	msgOrderBy        = "Unable to parse ORDER BY clause."
	msgInvalidNumber  = "Invalid number format for %s value."
)

// Sentinel errors for errors.Is. A sentinel with an empty Clause matches any
// clause of its type.
var (
	ErrMissingClause  = &ParseError{Type: ErrorTypeMissingClause}
	ErrMissingColumns = &ParseError{Type: ErrorTypeMissingClause, Clause: SELECT}
	ErrMissingFrom    = &ParseError{Type: ErrorTypeMissingClause, Clause: FROM}
	ErrJoin           = &ParseError{Type: ErrorTypeJoin}
	ErrWhere          = &ParseError{Type: ErrorTypeWhere}
	ErrInvalidHaving  = &ParseError{Type: ErrorTypeInvalidHaving}
	ErrHaving         = &ParseError{Type: ErrorTypeHaving}
	ErrOrderBy        = &ParseError{Type: ErrorTypeOrderBy}
	ErrInvalidNumber  = &ParseError{Type: ErrorTypeInvalidNumber}
)

// ParseError 解析错误。Error 只返回 Message，便于调用方直接展示
type ParseError struct {
	Type    ErrorType
	Message string
	// Clause 出错的子句关键字，如 FROM、HAVING
	Clause string
	// Fragment 导致失败的原始文本片段
	Fragment string
	// Cause 底层错误（恢复的 panic 或转换错误）
	Cause error
}

// Error 实现 error 接口
func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type and, when the target names one, by clause.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Clause == "" || strings.EqualFold(t.Clause, e.Clause))
}

// Detail renders the error with its type, clause and fragment for logs.
func (e *ParseError) Detail() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))
	if e.Clause != "" {
		builder.WriteString(fmt.Sprintf(" (clause %s)", e.Clause))
	}
	if e.Fragment != "" {
		builder.WriteString(fmt.Sprintf(" (found '%s')", e.Fragment))
	}
	if e.Cause != nil {
		builder.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return builder.String()
}

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeMissingClause:
		return "MISSING_CLAUSE"
	case ErrorTypeJoin:
		return "JOIN_ERROR"
	case ErrorTypeWhere:
		return "WHERE_ERROR"
	case ErrorTypeInvalidHaving:
		return "INVALID_HAVING"
	case ErrorTypeHaving:
		return "HAVING_ERROR"
	case ErrorTypeOrderBy:
		return "ORDER_BY_ERROR"
	case ErrorTypeInvalidNumber:
		return "INVALID_NUMBER"
	default:
		return "UNKNOWN_ERROR"
	}
}

func newMissingClauseError(clause string) *ParseError {
	msg := msgMissingFrom
	if clause == SELECT {
		msg = msgMissingColumns
	}
	return &ParseError{Type: ErrorTypeMissingClause, Message: msg, Clause: clause}
}

func newClauseError(errType ErrorType, clause, message string, cause error) *ParseError {
	return &ParseError{Type: errType, Message: message, Clause: clause, Cause: cause}
}

// CreateInvalidHavingError reports a HAVING fragment that is not an aggregate predicate.
func CreateInvalidHavingError(fragment string) *ParseError {
	return &ParseError{
		Type:     ErrorTypeInvalidHaving,
		Message:  msgInvalidHaving + fragment,
		Clause:   HAVING,
		Fragment: fragment,
	}
}

// CreateInvalidNumberError reports a LIMIT or OFFSET value that is not an integer.
func CreateInvalidNumberError(keyword, raw string, cause error) *ParseError {
	return &ParseError{
		Type:     ErrorTypeInvalidNumber,
		Message:  fmt.Sprintf(msgInvalidNumber, keyword),
		Clause:   keyword,
		Fragment: raw,
		Cause:    cause,
	}
}

// recoverClause turns a panic raised while one clause was being parsed into a
// ParseError for that clause. It must be deferred directly.
func recoverClause(errType ErrorType, clause, message string, err *error) {
	if r := recover(); r != nil {
		*err = newClauseError(errType, clause, message, fmt.Errorf("%v", r))
	}
}
