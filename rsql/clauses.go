package rsql

import (
	"regexp"
	"strings"

	"github.com/rulego/sqlclause/types"
)

var (
	// (SELECT ...) AS alias
	subqueryAliasRe = regexp.MustCompile(`(?is)\((SELECT\s.*)\)\s*AS\s*(\w+)`)
	// (SELECT ...)
	subqueryRe   = regexp.MustCompile(`(?is)\((SELECT\s.*)\)`)
	commaRe      = regexp.MustCompile(`,\s*`)
	aliasRe      = regexp.MustCompile(`(?i)\s+AS\s+|\s+`)
	andRe        = regexp.MustCompile(`(?i)\s+AND\s+`)
	andOrRe      = regexp.MustCompile(`(?i)\s+AND\s+|\s+OR\s+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	aggregateRe  = regexp.MustCompile(`(?i)\b(` + aggregateAlternation() + `)\((.*?)\)\s*(>=|<=|>|<|=)\s*(\d+(?:\.\d+)?)`)
	andWordRe    = regexp.MustCompile(`(?i)\bAND\b`)
	orWordRe     = regexp.MustCompile(`(?i)\bOR\b`)
	joinStartRe  = regexp.MustCompile(`(?i)\b(?:(` + strings.Join(joinTypes, "|") + `)\s+(?:OUTER\s+)?)?JOIN\s+`)
)

// splitClause splits on re, trims every piece and drops empty ones.
func splitClause(re *regexp.Regexp, clause string) []string {
	parts := re.Split(clause, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseColumns returns the projection list. A column list holding an aliased
// subquery collapses into a single "SUBQUERY: alias" entry.
func (p *Parser) parseColumns(columns string) ([]string, map[string]*types.Query, error) {
	m := subqueryAliasRe.FindStringSubmatch(columns)
	if m == nil {
		return splitClause(commaRe, columns), nil, nil
	}
	subquery, alias := m[1], m[2]
	nested, err := p.parseSubquery(subquery)
	if err != nil {
		return nil, nil, err
	}
	var retained map[string]*types.Query
	if nested != nil {
		retained = map[string]*types.Query{alias: nested}
	}
	return []string{types.SubqueryMarker + alias}, retained, nil
}

func (p *Parser) parseSources(fromClause string) ([]types.Source, error) {
	if m := subqueryAliasRe.FindStringSubmatch(fromClause); m != nil {
		source, err := p.subquerySource(m[1], m[2])
		if err != nil {
			return nil, err
		}
		return []types.Source{source}, nil
	}
	exprs := splitClause(commaRe, fromClause)
	sources := make([]types.Source, 0, len(exprs))
	for _, expr := range exprs {
		sources = append(sources, splitSource(expr))
	}
	return sources, nil
}

func (p *Parser) subquerySource(subquery, alias string) (types.Source, error) {
	source := types.NewSubquerySource(subquery, alias)
	nested, err := p.parseSubquery(subquery)
	if err != nil {
		return types.Source{}, err
	}
	source.Query = nested
	return source, nil
}

// splitSource splits "table alias" or "table AS alias".
func splitSource(expr string) types.Source {
	parts := aliasRe.Split(expr, -1)
	if len(parts) == 2 {
		return types.NewSource(parts[0], parts[1])
	}
	return types.NewSource(parts[0], "")
}

// parseJoins scans the whole statement for typed JOINs. Each join's source runs
// up to ON and its condition up to the next JOIN or clause keyword.
func (p *Parser) parseJoins(s *clauseScanner) (joins []types.Join, err error) {
	defer recoverClause(ErrorTypeJoin, JOIN, msgJoin, &err)

	joins = make([]types.Join, 0)
	starts := joinStartRe.FindAllStringSubmatchIndex(s.text, -1)
	onRe := keywordPattern("ON")
	endRe := keywordPattern(joinTerminators)

	for i, loc := range starts {
		stop := len(s.text)
		if i+1 < len(starts) {
			stop = starts[i+1][0]
		}
		if end := s.anywhere(endRe, loc[1]); end != nil && end[0] < stop {
			stop = end[0]
		}
		on := s.anywhere(onRe, loc[1])
		if on == nil || on[0] >= stop {
			p.options.log.Warn("skipping JOIN without ON: %q", strings.TrimSpace(s.text[loc[0]:stop]))
			continue
		}

		joinType := defaultJoinType
		if loc[2] >= 0 && LookupIsJoinType(s.text[loc[2]:loc[3]]) {
			joinType = strings.ToUpper(s.text[loc[2]:loc[3]])
		}
		sourceExpr := strings.TrimSpace(s.text[loc[1]:on[0]])
		condition := strings.TrimSpace(s.text[on[1]:stop])

		var source types.Source
		if m := subqueryAliasRe.FindStringSubmatch(sourceExpr); m != nil {
			if source, err = p.subquerySource(m[1], m[2]); err != nil {
				return nil, err
			}
		} else {
			source = splitSource(sourceExpr)
		}
		p.options.log.Debug("join %s %s on %s", joinType, source, condition)
		joins = append(joins, types.Join{Type: joinType, Source: source, Condition: condition})
	}
	return joins, nil
}

// parseWhere splits the WHERE text on AND. When the text holds a parenthesized
// SELECT the whole clause becomes one subquery entry instead.
func (p *Parser) parseWhere(clause string) (where []types.WhereClause, err error) {
	defer recoverClause(ErrorTypeWhere, WHERE, msgWhere, &err)

	if m := subqueryRe.FindStringSubmatch(clause); m != nil {
		entry := types.NewWhereSubquery(m[1])
		if entry.Query, err = p.parseSubquery(m[1]); err != nil {
			return nil, err
		}
		return []types.WhereClause{entry}, nil
	}

	fragments := splitClause(andRe, clause)
	where = make([]types.WhereClause, 0, len(fragments))
	for _, fragment := range fragments {
		if p.options.checkPredicate {
			if cerr := CheckPredicate(fragment); cerr != nil {
				return nil, &ParseError{
					Type:     ErrorTypeWhere,
					Message:  msgWhere,
					Clause:   WHERE,
					Fragment: fragment,
					Cause:    cerr,
				}
			}
		}
		where = append(where, types.NewWhereClause(fragment))
	}
	return where, nil
}

// parseHaving decomposes aggregate predicates joined by AND/OR. The logical
// operator is read once from the whole clause and stamped on every entry.
func (p *Parser) parseHaving(clause string) (having []types.HavingClause, err error) {
	defer recoverClause(ErrorTypeHaving, HAVING, msgHaving, &err)

	if m := subqueryRe.FindStringSubmatch(clause); m != nil {
		entry := types.NewHavingSubquery(m[1])
		if entry.Query, err = p.parseSubquery(m[1]); err != nil {
			return nil, err
		}
		return []types.HavingClause{entry}, nil
	}

	logical := logicalOperatorOf(clause)
	fragments := splitClause(andOrRe, clause)
	having = make([]types.HavingClause, 0, len(fragments))
	for _, fragment := range fragments {
		m := aggregateRe.FindStringSubmatch(fragment)
		if m == nil {
			return nil, CreateInvalidHavingError(fragment)
		}
		field := strings.TrimSpace(m[2])
		if field == "" {
			field = "*"
		}
		having = append(having, types.HavingClause{
			Function:        aggregateFunctions[strings.ToUpper(m[1])],
			Field:           field,
			Operator:        m[3],
			Value:           m[4],
			LogicalOperator: logical,
		})
	}
	return having, nil
}

// logicalOperatorOf returns AND if the text contains it, else OR, else "".
func logicalOperatorOf(clause string) string {
	switch {
	case andWordRe.MatchString(clause):
		return AND
	case orWordRe.MatchString(clause):
		return OR
	default:
		return ""
	}
}

// parseSorts reads "col [direction]" keys. The direction is uppercased but not
// validated. Keys with one token or more than two default to ASC.
func parseSorts(clause string) (sorts []types.Sort, err error) {
	defer recoverClause(ErrorTypeOrderBy, ORDER_BY, msgOrderBy, &err)

	fragments := splitClause(commaRe, clause)
	sorts = make([]types.Sort, 0, len(fragments))
	for _, fragment := range fragments {
		parts := whitespaceRe.Split(fragment, -1)
		direction := ""
		if len(parts) == 2 {
			direction = strings.ToUpper(parts[1])
		}
		sorts = append(sorts, types.NewSort(parts[0], direction))
	}
	return sorts, nil
}
