package rsql

import (
	"strings"

	"github.com/rulego/sqlclause/logger"
	"github.com/rulego/sqlclause/types"
)

// ParserOption 解析器配置选项
type ParserOption func(*parserOptions)

type parserOptions struct {
	log            logger.Logger
	keepNested     bool
	checkPredicate bool
	onSubquery     func(depth int, sql string)
}

// WithLogger 设置解析器使用的日志记录器，默认使用 logger.GetDefault()
func WithLogger(log logger.Logger) ParserOption {
	return func(o *parserOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithNestedQueries keeps the result of every nested SELECT on the entity that
// referenced it (Source.Query, WhereClause.Query, HavingClause.Query,
// Query.ColumnQueries). Without it nested results are parsed and dropped.
func WithNestedQueries() ParserOption {
	return func(o *parserOptions) {
		o.keepNested = true
	}
}

// WithPredicateCheck compiles every WHERE fragment as an expr-lang expression
// and fails the parse when one does not compile.
func WithPredicateCheck() ParserOption {
	return func(o *parserOptions) {
		o.checkPredicate = true
	}
}

// WithSubqueryHook registers fn to be called before each nested SELECT is parsed.
// depth is 1 for subqueries of the top-level statement.
func WithSubqueryHook(fn func(depth int, sql string)) ParserOption {
	return func(o *parserOptions) {
		o.onSubquery = fn
	}
}

// Parser splits one SELECT statement into its clauses. It is re-entrant:
// a nested SELECT is handed to a child Parser sharing the same options.
type Parser struct {
	input   string
	depth   int
	options *parserOptions
}

func NewParser(input string, opts ...ParserOption) *Parser {
	o := &parserOptions{log: logger.GetDefault()}
	for _, opt := range opts {
		opt(o)
	}
	return &Parser{input: input, options: o}
}

// Parse 提取各个子句并组装 Query。
// 每个子句都从完整文本中独立提取，不会消耗原始字符串。
func (p *Parser) Parse() (*types.Query, error) {
	sql := normalize(p.input)
	s := newClauseScanner(sql)
	log := p.options.log

	// 提取SELECT列和FROM子句，两者都是必需的
	columns, _ := s.between(SELECT, columnsTerminators)
	fromClause, _ := s.between(FROM, fromTerminators)
	if fromClause == "" {
		return nil, newMissingClauseError(FROM)
	}
	if columns == "" {
		return nil, newMissingClauseError(SELECT)
	}

	// 可选子句，空窗口视为不存在
	whereClause, _ := s.between(WHERE, whereTerminators)
	groupByClause, _ := s.between(GROUP_BY, groupByTerminators)
	havingClause, _ := s.between(HAVING, havingTerminators)
	orderByClause, _ := s.between(ORDER_BY, orderByTerminators)

	log.Debug("depth %d windows: columns=%q from=%q where=%q groupBy=%q having=%q orderBy=%q",
		p.depth, columns, fromClause, whereClause, groupByClause, havingClause, orderByClause)

	query := &types.Query{GroupByColumns: []string{}}
	var err error

	if query.Columns, query.ColumnQueries, err = p.parseColumns(columns); err != nil {
		return nil, err
	}
	if len(query.Columns) == 0 {
		return nil, newMissingClauseError(SELECT)
	}
	if query.FromSources, err = p.parseSources(fromClause); err != nil {
		return nil, err
	}
	if len(query.FromSources) == 0 {
		return nil, newMissingClauseError(FROM)
	}
	if query.Joins, err = p.parseJoins(s); err != nil {
		return nil, err
	}
	if whereClause != "" {
		if query.WhereClauses, err = p.parseWhere(whereClause); err != nil {
			return nil, err
		}
	}
	if groupByClause != "" {
		query.GroupByColumns = splitClause(commaRe, groupByClause)
	}
	if havingClause != "" {
		if query.HavingClauses, err = p.parseHaving(havingClause); err != nil {
			return nil, err
		}
	}
	if orderByClause != "" {
		if query.SortColumns, err = parseSorts(orderByClause); err != nil {
			return nil, err
		}
	}
	if query.Limit, err = retrieveScalar(s, LIMIT); err != nil {
		return nil, err
	}
	if query.Offset, err = retrieveScalar(s, OFFSET); err != nil {
		return nil, err
	}
	return query, nil
}

// parseSubquery runs a child parser over a nested SELECT. The result is only
// returned when nested retention is enabled; errors always propagate.
func (p *Parser) parseSubquery(sql string) (*types.Query, error) {
	depth := p.depth + 1
	p.options.log.Debug("descending into subquery at depth %d: %s", depth, sql)
	if p.options.onSubquery != nil {
		p.options.onSubquery(depth, sql)
	}
	child := &Parser{input: sql, depth: depth, options: p.options}
	nested, err := child.Parse()
	if err != nil {
		return nil, err
	}
	if !p.options.keepNested {
		return nil, nil
	}
	return nested, nil
}

// normalize drops surrounding whitespace and trailing statement terminators.
func normalize(sql string) string {
	return strings.TrimRight(strings.TrimSpace(sql), "; \t\r\n")
}

// Parse 是包级别的Parse函数，用于解析SQL字符串
func Parse(sql string, opts ...ParserOption) (*types.Query, error) {
	return NewParser(sql, opts...).Parse()
}
