package rsql

import (
	"github.com/rulego/sqlclause/condition"
	"github.com/rulego/sqlclause/types"
)

// PredicateExpr returns the expr-lang form of a WHERE fragment.
func PredicateExpr(fragment string) string {
	return condition.Translate(fragment)
}

// PredicateFields lists the columns a WHERE fragment refers to.
func PredicateFields(fragment string) ([]string, error) {
	return condition.Fields(fragment)
}

// CheckPredicate reports whether fragment is a well-formed predicate.
func CheckPredicate(fragment string) error {
	_, err := condition.Compile(fragment)
	return err
}

// WhereFields collects the column references of every plain WHERE entry of q,
// without duplicates. Subquery entries are skipped.
func WhereFields(q *types.Query) ([]string, error) {
	var fields []string
	seen := make(map[string]bool)
	for _, where := range q.WhereClauses {
		if where.IsSubquery {
			continue
		}
		names, err := PredicateFields(where.Condition)
		if err != nil {
			return nil, &ParseError{
				Type:     ErrorTypeWhere,
				Message:  msgWhere,
				Clause:   WHERE,
				Fragment: where.Condition,
				Cause:    err,
			}
		}
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
		}
	}
	return fields, nil
}
