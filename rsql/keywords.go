/*
 * Copyright 2024 The RuleGo Authors.
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

// keywords.go 定义子句关键字以及每个子句窗口的结束关键字
package rsql

import (
	"sort"
	"strings"
)

// 子句关键字
const (
	SELECT   = "SELECT"
	FROM     = "FROM"
	WHERE    = "WHERE"
	GROUP_BY = "GROUP BY"
	HAVING   = "HAVING"
	ORDER_BY = "ORDER BY"
	LIMIT    = "LIMIT"
	OFFSET   = "OFFSET"
	JOIN     = "JOIN"
)

// 逻辑运算符
const (
	AND = "AND"
	OR  = "OR"
)

// Clause window terminators, written as regular-expression alternations.
// End of text always closes a window as well.
const (
	columnsTerminators = FROM
	fromTerminators    = "WHERE|" + joinKeywords + "|GROUP BY|HAVING|ORDER BY|LIMIT|OFFSET"
	joinKeywords       = "INNER JOIN|LEFT JOIN|RIGHT JOIN|FULL JOIN|LEFT OUTER JOIN|RIGHT OUTER JOIN|FULL OUTER JOIN|JOIN"
	whereTerminators   = "GROUP BY|HAVING|ORDER BY|LIMIT|OFFSET"
	groupByTerminators = "HAVING|ORDER BY|LIMIT|OFFSET"
	havingTerminators  = "ORDER BY|LIMIT|OFFSET"
	orderByTerminators = "LIMIT|OFFSET"
	joinTerminators    = whereTerminators + "|WHERE"
)

// joinTypes 支持的连接类型，不带类型的 JOIN 按 INNER 处理
var joinTypes = []string{"INNER", "LEFT", "RIGHT", "FULL"}

const defaultJoinType = "INNER"

// aggregateFunctions HAVING 中允许出现的聚合函数
var aggregateFunctions = map[string]string{
	"COUNT": "COUNT",
	"SUM":   "SUM",
	"AVG":   "AVG",
	"MIN":   "MIN",
	"MAX":   "MAX",
}

// aggregateAlternation 返回聚合函数名的正则备选项，按名称排序
func aggregateAlternation() string {
	names := make([]string, 0, len(aggregateFunctions))
	for name := range aggregateFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// LookupIsAggregateFunc 用于判断是否是 HAVING 支持的聚合函数
func LookupIsAggregateFunc(ident string) bool {
	_, ok := aggregateFunctions[strings.ToUpper(ident)]
	return ok
}

// LookupIsJoinType 用于判断是否是支持的连接类型
func LookupIsJoinType(ident string) bool {
	for _, t := range joinTypes {
		if strings.EqualFold(t, ident) {
			return true
		}
	}
	return false
}
