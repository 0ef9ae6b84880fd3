package rsql

import (
	"github.com/rulego/sqlclause/utils/cast"
)

// retrieveScalar reads the integer after LIMIT or OFFSET. A missing keyword
// yields nil without error.
func retrieveScalar(s *clauseScanner, keyword string) (*int, error) {
	raw, ok := s.after(keyword)
	if !ok {
		return nil, nil
	}
	n, err := cast.ToInt(raw)
	if err != nil {
		return nil, CreateInvalidNumberError(keyword, raw, err)
	}
	return &n, nil
}

// RetrieveLimit returns the LIMIT value of sql, or nil when there is none.
func RetrieveLimit(sql string) (*int, error) {
	return retrieveScalar(newClauseScanner(normalize(sql)), LIMIT)
}

// RetrieveOffset returns the OFFSET value of sql, or nil when there is none.
func RetrieveOffset(sql string) (*int, error) {
	return retrieveScalar(newClauseScanner(normalize(sql)), OFFSET)
}
