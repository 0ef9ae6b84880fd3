package rsql

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rulego/sqlclause/logger"
	"github.com/rulego/sqlclause/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	subqueryExample = "SELECT author.name, (SELECT COUNT(*) FROM book WHERE book.author_id = author.id) AS book_count FROM author WHERE EXISTS (SELECT 1 FROM book WHERE book.author_id = author.id) LIMIT 10 OFFSET 5;"
	joinsExample    = "SELECT author.name, count(book.id), sum(book.cost) FROM author LEFT JOIN book ON (author.id = book.author_id) GROUP BY author.name HAVING COUNT(*) > 1 AND SUM(book.cost) > 500 LIMIT 10;"
)

func quiet() ParserOption {
	return WithLogger(logger.NewDiscardLogger())
}

func TestParse_SubqueryExample(t *testing.T) {
	var calls []int
	query, err := Parse(subqueryExample, quiet(), WithSubqueryHook(func(depth int, sql string) {
		calls = append(calls, depth)
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"SUBQUERY: book_count"}, query.Columns)
	require.Len(t, query.FromSources, 1)
	assert.Equal(t, types.Source{TableName: "author"}, query.FromSources[0])
	assert.Empty(t, query.Joins)

	require.Len(t, query.WhereClauses, 1)
	where := query.WhereClauses[0]
	assert.True(t, where.IsSubquery)
	assert.Equal(t, "SELECT 1 FROM book WHERE book.author_id = author.id", where.Subquery)
	assert.Nil(t, where.Query)

	require.NotNil(t, query.Limit)
	assert.Equal(t, 10, *query.Limit)
	require.NotNil(t, query.Offset)
	assert.Equal(t, 5, *query.Offset)

	assert.Equal(t, []string{}, query.GroupByColumns)
	assert.Nil(t, query.HavingClauses)
	assert.Nil(t, query.SortColumns)
	assert.Nil(t, query.ColumnQueries)

	// column subquery and WHERE subquery
	assert.Equal(t, []int{1, 1}, calls)
}

func TestParse_JoinsExample(t *testing.T) {
	query, err := Parse(joinsExample, quiet())
	require.NoError(t, err)

	assert.Equal(t, []string{"author.name", "count(book.id)", "sum(book.cost)"}, query.Columns)
	assert.Equal(t, []types.Source{{TableName: "author"}}, query.FromSources)

	require.Len(t, query.Joins, 1)
	assert.Equal(t, "LEFT", query.Joins[0].Type)
	assert.Equal(t, "book", query.Joins[0].Source.TableName)
	assert.False(t, query.Joins[0].Source.HasAlias())
	assert.Equal(t, "(author.id = book.author_id)", query.Joins[0].Condition)

	assert.Nil(t, query.WhereClauses)
	assert.Equal(t, []string{"author.name"}, query.GroupByColumns)
	assert.Equal(t, []types.HavingClause{
		{Function: "COUNT", Field: "*", Operator: ">", Value: "1", LogicalOperator: "AND"},
		{Function: "SUM", Field: "book.cost", Operator: ">", Value: "500", LogicalOperator: "AND"},
	}, query.HavingClauses)

	require.NotNil(t, query.Limit)
	assert.Equal(t, 10, *query.Limit)
	assert.Nil(t, query.Offset)

	expected := "Query:\n" +
		"Columns: [author.name, count(book.id), sum(book.cost)]\n" +
		"From: [author]\n" +
		"Joins: [LEFT JOIN book ON (author.id = book.author_id)]\n" +
		"Where Clauses: None\n" +
		"Group By: [author.name]\n" +
		"Having Clauses: [COUNT(*) > 1 AND, SUM(book.cost) > 500 AND]\n" +
		"Order By: None\n" +
		"Limit: 10\n" +
		"Offset: None"
	assert.Equal(t, expected, query.String())
}

func TestParse_MissingFrom(t *testing.T) {
	inputs := []string{
		"",
		"SELECT a",
		"SELECT a, b WHERE x = 1",
		"select * form t",
		"SELECT a FROM",
		"SELECT a FROM ;",
		"SELECT a, (SELECT b FROM u) AS c",
	}
	for _, sql := range inputs {
		t.Run(sql, func(t *testing.T) {
			_, err := Parse(sql, quiet())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingFrom))
			assert.Equal(t, "Missing FROM clause.", err.Error())
		})
	}
}

func TestParse_MissingColumns(t *testing.T) {
	for _, sql := range []string{"SELECT FROM t", "FROM t", "SELECT  FROM t WHERE a = 1"} {
		t.Run(sql, func(t *testing.T) {
			_, err := Parse(sql, quiet())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingColumns))
			assert.Equal(t, "Missing columns in SELECT clause.", err.Error())
		})
	}
}

func TestParse_Sources(t *testing.T) {
	query, err := Parse("SELECT a.name, b.title FROM author a, book AS b", quiet())
	require.NoError(t, err)
	assert.Equal(t, []types.Source{
		{TableName: "author", Alias: "a"},
		{TableName: "book", Alias: "b"},
	}, query.FromSources)
}

func TestParse_FromSubquery(t *testing.T) {
	sql := "SELECT t.a FROM (SELECT a FROM u WHERE a > 1) AS t"

	count := 0
	query, err := Parse(sql, quiet(), WithSubqueryHook(func(depth int, inner string) {
		count++
		assert.Equal(t, 1, depth)
		assert.Equal(t, "SELECT a FROM u WHERE a > 1", inner)
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, query.FromSources, 1)
	source := query.FromSources[0]
	assert.True(t, source.IsSubquery)
	assert.Equal(t, "t", source.Alias)
	assert.Equal(t, "SELECT a FROM u WHERE a > 1", source.TableName)
	assert.Nil(t, source.Query)
	assert.Nil(t, query.WhereClauses)
}

func TestParse_NestedQueries(t *testing.T) {
	query, err := Parse("SELECT t.a FROM (SELECT a FROM u WHERE a > 1) AS t", quiet(), WithNestedQueries())
	require.NoError(t, err)
	nested := query.FromSources[0].Query
	require.NotNil(t, nested)
	assert.Equal(t, []string{"a"}, nested.Columns)
	assert.Equal(t, []types.WhereClause{{Condition: "a > 1"}}, nested.WhereClauses)

	query, err = Parse(subqueryExample, quiet(), WithNestedQueries())
	require.NoError(t, err)
	require.Contains(t, query.ColumnQueries, "book_count")
	assert.Equal(t, []string{"COUNT(*)"}, query.ColumnQueries["book_count"].Columns)
	require.NotNil(t, query.WhereClauses[0].Query)
	assert.Equal(t, []string{"1"}, query.WhereClauses[0].Query.Columns)
}

func TestParse_SubqueryDepth(t *testing.T) {
	var depths []int
	_, err := Parse("SELECT x FROM (SELECT y FROM (SELECT z FROM w) AS i) AS o", quiet(),
		WithSubqueryHook(func(depth int, sql string) {
			depths = append(depths, depth)
		}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, depths)
}

func TestParse_SubqueryErrorPropagates(t *testing.T) {
	_, err := Parse("SELECT a FROM (SELECT b) AS x", quiet())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingFrom))
}

func TestParse_Where(t *testing.T) {
	query, err := Parse("SELECT * FROM book WHERE book.cost > 50 and book.title LIKE 'A%' OR x = 1 ORDER BY book.cost", quiet())
	require.NoError(t, err)
	assert.True(t, query.HasWhere())
	assert.Equal(t, []types.WhereClause{
		{Condition: "book.cost > 50"},
		{Condition: "book.title LIKE 'A%' OR x = 1"},
	}, query.WhereClauses)
}

func TestParse_GroupBy(t *testing.T) {
	query, err := Parse("SELECT a, b, c, COUNT(*) FROM t GROUP BY a, b, c", quiet())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, query.GroupByColumns)
}

func TestParse_Having(t *testing.T) {
	query, err := Parse("SELECT a FROM t GROUP BY a HAVING max(x) >= 2.5 or min(y) < 1", quiet())
	require.NoError(t, err)
	require.Len(t, query.HavingClauses, 2)

	first := query.HavingClauses[0]
	assert.Equal(t, "MAX", first.Function)
	assert.Equal(t, "x", first.Field)
	assert.Equal(t, ">=", first.Operator)
	assert.Equal(t, "OR", first.LogicalOperator)
	threshold, err := first.Threshold()
	require.NoError(t, err)
	assert.Equal(t, 2.5, threshold)

	assert.Equal(t, "MIN", query.HavingClauses[1].Function)
	assert.Equal(t, "OR", query.HavingClauses[1].LogicalOperator)

	query, err = Parse("SELECT a FROM t GROUP BY a HAVING COUNT(*) > 1", quiet())
	require.NoError(t, err)
	require.Len(t, query.HavingClauses, 1)
	assert.Equal(t, "", query.HavingClauses[0].LogicalOperator)
}

func TestParse_InvalidHaving(t *testing.T) {
	_, err := Parse("SELECT a FROM t GROUP BY a HAVING COUNT(*) > 1 AND a = 1", quiet())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidHaving))
	assert.Equal(t, "Invalid HAVING clause format for condition: a = 1", err.Error())

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "a = 1", perr.Fragment)
}

func TestParse_HavingSubquery(t *testing.T) {
	query, err := Parse("SELECT a FROM t GROUP BY a HAVING COUNT(*) > (SELECT 1 FROM u)", quiet())
	require.NoError(t, err)
	require.Len(t, query.HavingClauses, 1)
	assert.True(t, query.HavingClauses[0].IsSubquery)
	assert.Equal(t, "SELECT 1 FROM u", query.HavingClauses[0].Subquery)
}

func TestParse_Sorts(t *testing.T) {
	query, err := Parse("SELECT name FROM t order by name desc, age, city Asc LIMIT 3", quiet())
	require.NoError(t, err)
	assert.Equal(t, []types.Sort{
		{Column: "name", Direction: "DESC"},
		{Column: "age", Direction: "ASC"},
		{Column: "city", Direction: "ASC"},
	}, query.SortColumns)
}

func TestParse_SortsExtraTokens(t *testing.T) {
	// 超过两个词时方向取默认值
	query, err := Parse("SELECT name FROM t ORDER BY name DESC NULLS LAST, age desc", quiet())
	require.NoError(t, err)
	assert.Equal(t, []types.Sort{
		{Column: "name", Direction: "ASC"},
		{Column: "age", Direction: "DESC"},
	}, query.SortColumns)
}

func TestParse_Joins(t *testing.T) {
	sql := "SELECT * FROM a INNER JOIN b ON a.id = b.a_id RIGHT JOIN c AS cc ON b.id = cc.b_id " +
		"join d ON d.id = a.d_id LEFT OUTER JOIN e ON e.id = a.e_id WHERE a.x = 1"
	query, err := Parse(sql, quiet())
	require.NoError(t, err)

	assert.Equal(t, []types.Source{{TableName: "a"}}, query.FromSources)
	assert.Equal(t, []types.Join{
		{Type: "INNER", Source: types.Source{TableName: "b"}, Condition: "a.id = b.a_id"},
		{Type: "RIGHT", Source: types.Source{TableName: "c", Alias: "cc"}, Condition: "b.id = cc.b_id"},
		{Type: "INNER", Source: types.Source{TableName: "d"}, Condition: "d.id = a.d_id"},
		{Type: "LEFT", Source: types.Source{TableName: "e"}, Condition: "e.id = a.e_id"},
	}, query.Joins)
	assert.Equal(t, []types.WhereClause{{Condition: "a.x = 1"}}, query.WhereClauses)
}

func TestParse_JoinWithoutOn(t *testing.T) {
	var buf bytes.Buffer
	query, err := Parse("SELECT * FROM a FULL JOIN b WHERE x = 1", WithLogger(logger.NewLogger(logger.WARN, &buf)))
	require.NoError(t, err)
	assert.Empty(t, query.Joins)
	assert.NotNil(t, query.Joins)
	assert.Contains(t, buf.String(), "skipping JOIN without ON")
}

func TestParse_JoinSubquery(t *testing.T) {
	query, err := Parse("SELECT t.a FROM t LEFT JOIN (SELECT b FROM u) AS x ON t.a = x.b", quiet(), WithNestedQueries())
	require.NoError(t, err)
	require.Len(t, query.Joins, 1)
	join := query.Joins[0]
	assert.True(t, join.Source.IsSubquery)
	assert.Equal(t, "x", join.Source.Alias)
	assert.Equal(t, "SELECT b FROM u", join.Source.TableName)
	assert.Equal(t, "t.a = x.b", join.Condition)
	require.NotNil(t, join.Source.Query)
	assert.Equal(t, []string{"b"}, join.Source.Query.Columns)
}

func TestParse_LimitOffset(t *testing.T) {
	query, err := Parse("SELECT a FROM t limit 007 offset 0", quiet())
	require.NoError(t, err)
	assert.Equal(t, 7, *query.Limit)
	assert.Equal(t, 0, *query.Offset)

	_, err = Parse("SELECT a FROM t LIMIT 99999999999999999999999", quiet())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidNumber))
	assert.Equal(t, "Invalid number format for LIMIT value.", err.Error())
}

func TestRetrieveLimitOffset(t *testing.T) {
	limit, err := RetrieveLimit("SELECT a FROM t LIMIT 25")
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, 25, *limit)

	limit, err = RetrieveLimit("SELECT a FROM t")
	require.NoError(t, err)
	assert.Nil(t, limit)

	offset, err := RetrieveOffset("SELECT a FROM t LIMIT 25 OFFSET 50;")
	require.NoError(t, err)
	require.NotNil(t, offset)
	assert.Equal(t, 50, *offset)

	offset, err = RetrieveOffset("SELECT a FROM t LIMIT 25")
	require.NoError(t, err)
	assert.Nil(t, offset)
}

func TestRetrieveLimit_WholeText(t *testing.T) {
	// LIMIT 只出现在子查询中时也会被读取
	limit, err := RetrieveLimit("SELECT a FROM (SELECT b FROM t LIMIT 3) AS s")
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, 3, *limit)

	query, err := Parse("SELECT a FROM (SELECT b FROM t LIMIT 3 OFFSET 4) AS s", quiet())
	require.NoError(t, err)
	require.NotNil(t, query.Limit)
	require.NotNil(t, query.Offset)
	assert.Equal(t, 3, *query.Limit)
	assert.Equal(t, 4, *query.Offset)
}

func TestParse_JoinInsideSubquery(t *testing.T) {
	query, err := Parse("SELECT s.a FROM (SELECT a FROM t INNER JOIN u ON t.id = u.id) AS s", quiet())
	require.NoError(t, err)
	require.Len(t, query.FromSources, 1)
	assert.True(t, query.FromSources[0].IsSubquery)
	assert.Equal(t, []types.Join{
		{Type: "INNER", Source: types.Source{TableName: "u"}, Condition: "t.id = u.id) AS s"},
	}, query.Joins)
}

func TestParse_Normalize(t *testing.T) {
	query, err := Parse("  \n SELECT a FROM t WHERE b = 2 ;; \n", quiet())
	require.NoError(t, err)
	assert.Equal(t, []types.WhereClause{{Condition: "b = 2"}}, query.WhereClauses)
}

func TestParse_PredicateCheck(t *testing.T) {
	sql := "SELECT a FROM t WHERE a > > 1"

	_, err := Parse(sql, quiet())
	require.NoError(t, err)

	_, err = Parse(sql, quiet(), WithPredicateCheck())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWhere))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "a > > 1", perr.Fragment)
	assert.NotNil(t, perr.Cause)

	_, err = Parse("SELECT a FROM t WHERE name LIKE 'A%' AND id IN (1, 2) AND deleted_at IS NULL", quiet(), WithPredicateCheck())
	assert.NoError(t, err)
}

// TestParse_RecoversClausePanics 测试子句解析中的 panic 被转换为对应子句的错误
func TestParse_RecoversClausePanics(t *testing.T) {
	boom := WithSubqueryHook(func(depth int, sql string) {
		panic("hook failure")
	})

	tests := []struct {
		name    string
		sql     string
		target  error
		message string
	}{
		{"where", "SELECT a FROM t WHERE EXISTS (SELECT 1 FROM u)", ErrWhere, "Unable to parse WHERE clause."},
		{"having", "SELECT a FROM t GROUP BY a HAVING COUNT(*) > (SELECT 1 FROM u)", ErrHaving, "Unable to parse HAVING clause."},
		{"join", "SELECT a FROM t LEFT JOIN (SELECT b FROM u) AS x ON t.a = x.b", ErrJoin, "Unable to parse JOIN clause."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.sql, quiet(), boom)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestParser_Reusable(t *testing.T) {
	p := NewParser(joinsExample, quiet())
	first, err := p.Parse()
	require.NoError(t, err)
	second, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWhereFields(t *testing.T) {
	query, err := Parse("SELECT * FROM book WHERE book.cost > 50 AND author.id = book.author_id", quiet())
	require.NoError(t, err)
	fields, err := WhereFields(query)
	require.NoError(t, err)
	assert.Equal(t, []string{"book.cost", "author.id", "book.author_id"}, fields)

	query, err = Parse(subqueryExample, quiet())
	require.NoError(t, err)
	fields, err = WhereFields(query)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestPredicateExpr(t *testing.T) {
	assert.Equal(t, "a == 1 || b != 2", PredicateExpr("a = 1 OR b <> 2"))
	assert.NoError(t, CheckPredicate("book.cost > 50"))
	assert.Error(t, CheckPredicate("book.cost >"))
	fields, err := PredicateFields("author.id = book.author_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"author.id", "book.author_id"}, fields)
}
