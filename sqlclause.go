/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sqlclause

import (
	"io"
	"os"

	"github.com/rulego/sqlclause/logger"
	"github.com/rulego/sqlclause/rsql"
	"github.com/rulego/sqlclause/types"
	"github.com/rulego/sqlclause/utils/table"
)

// tableColumns 表格输出的列顺序
var tableColumns = []string{"clause", "value"}

// SQLClause 是子句解析器的入口。
// 它持有解析选项，可在多个 goroutine 中并发调用 Parse。
//
// 使用示例:
//
//	sc := sqlclause.New(sqlclause.WithNestedQueries())
//	query, err := sc.Parse("SELECT name FROM author WHERE age > 30 LIMIT 10")
type SQLClause struct {
	log            logger.Logger
	keepNested     bool
	checkPredicate bool
	onSubquery     func(depth int, sql string)
}

// New 创建一个新的解析器实例。
// 未设置日志记录器时使用 logger.GetDefault()。
//
// 示例:
//
//	// 默认实例
//	sc := sqlclause.New()
//
//	// 保留子查询解析结果并校验 WHERE 谓词
//	sc := sqlclause.New(sqlclause.WithNestedQueries(), sqlclause.WithPredicateCheck())
func New(options ...Option) *SQLClause {
	s := &SQLClause{
		log: logger.GetDefault(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Parse 将一条 SELECT 语句拆分为各个子句。
//
// 返回的错误均为 *rsql.ParseError，Error() 为固定的提示信息，例如:
//   - "Missing columns in SELECT clause."
//   - "Missing FROM clause."
//   - "Invalid HAVING clause format for condition: <片段>"
//
// 子查询中的错误会使整条语句解析失败。
//
// 示例:
//
//	query, err := sc.Parse("SELECT author.name, COUNT(book.id) FROM author " +
//		"LEFT JOIN book ON author.id = book.author_id " +
//		"GROUP BY author.name HAVING COUNT(*) > 1 LIMIT 10")
//	if err != nil {
//		return err
//	}
//	fmt.Println(query.Joins[0].Type) // LEFT
func (s *SQLClause) Parse(sql string) (*types.Query, error) {
	query, err := rsql.NewParser(sql, s.parserOptions()...).Parse()
	if err != nil {
		s.log.Debug("parse failed: %v", err)
		return nil, err
	}
	return query, nil
}

// ParseAll 依次解析多条语句，遇到第一个错误即返回。
func (s *SQLClause) ParseAll(sqls ...string) ([]*types.Query, error) {
	queries := make([]*types.Query, 0, len(sqls))
	for _, sql := range sqls {
		query, err := s.Parse(sql)
		if err != nil {
			return nil, err
		}
		queries = append(queries, query)
	}
	return queries, nil
}

func (s *SQLClause) parserOptions() []rsql.ParserOption {
	opts := []rsql.ParserOption{rsql.WithLogger(s.log)}
	if s.keepNested {
		opts = append(opts, rsql.WithNestedQueries())
	}
	if s.checkPredicate {
		opts = append(opts, rsql.WithPredicateCheck())
	}
	if s.onSubquery != nil {
		opts = append(opts, rsql.WithSubqueryHook(s.onSubquery))
	}
	return opts
}

// PrintTable 以表格形式打印解析结果到控制台，每个子句一行。
//
// 输出格式:
//
//	+---------+----------------+
//	| clause  | value          |
//	+---------+----------------+
//	| Columns | [author.name]  |
//	| From    | [author]       |
//	...
func PrintTable(query *types.Query) {
	FprintTable(os.Stdout, query)
}

// FprintTable 将解析结果以表格形式写入 w
func FprintTable(w io.Writer, query *types.Query) {
	table.Fprint(w, query.Rows(), tableColumns)
}

// Parse 使用给定选项解析一条语句，等价于 New(options...).Parse(sql)
func Parse(sql string, options ...Option) (*types.Query, error) {
	return New(options...).Parse(sql)
}
