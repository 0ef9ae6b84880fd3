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

/*
Package sqlclause 将一条 SELECT 语句拆分为结构化的子句。

它是一个基于关键字窗口的轻量级解析前端：不执行查询、不做优化、也不依赖表结构，
只负责识别投影列、数据源、JOIN、WHERE 谓词、GROUP BY、HAVING、ORDER BY
以及 LIMIT/OFFSET，并递归发现子查询。

# 核心特性

• 关键字窗口提取 - 每个子句从原始文本独立提取，大小写不敏感
• 子查询识别 - 列、FROM、JOIN、WHERE、HAVING 中的 (SELECT ...) 会被递归解析
• 多个 JOIN - 支持 INNER/LEFT/RIGHT/FULL 以及不带类型的 JOIN
• 结构化错误 - *rsql.ParseError 可通过 errors.Is 匹配错误种类
• 谓词分析 - 借助 expr-lang 校验 WHERE 片段并提取引用的字段

# 入门示例

	package main

	import (
		"fmt"

		"github.com/rulego/sqlclause"
	)

	func main() {
		sc := sqlclause.New()

		query, err := sc.Parse(`SELECT author.name, count(book.id), sum(book.cost)
			FROM author LEFT JOIN book ON (author.id = book.author_id)
			GROUP BY author.name
			HAVING COUNT(*) > 1 AND SUM(book.cost) > 500
			LIMIT 10`)
		if err != nil {
			panic(err)
		}

		fmt.Println(query)
		// Query:
		// Columns: [author.name, count(book.id), sum(book.cost)]
		// From: [author]
		// Joins: [LEFT JOIN book ON (author.id = book.author_id)]
		// Where Clauses: None
		// Group By: [author.name]
		// Having Clauses: [COUNT(*) > 1 AND, SUM(book.cost) > 500 AND]
		// Order By: None
		// Limit: 10
		// Offset: None
	}

# 子查询

默认情况下子查询只做校验性解析，结果中仅保留标记：列中的子查询变为
"SUBQUERY: 别名"，FROM/JOIN 中的子查询保留原始文本。使用 WithNestedQueries
可以把子查询的解析结果挂到对应的 Source、WhereClause、HavingClause 或
Query.ColumnQueries 上：

	sc := sqlclause.New(sqlclause.WithNestedQueries())

# 错误处理

	_, err := sc.Parse("SELECT name")
	if errors.Is(err, rsql.ErrMissingFrom) {
		fmt.Println(err) // Missing FROM clause.
	}

# 日志

日志通过 logger 包输出，默认仅打印 WARN 及以上级别。可以替换为 logrus：

	sc := sqlclause.New(sqlclause.WithLogger(logger.NewLogrusLogger(logrus.New(), nil)))
*/
package sqlclause
