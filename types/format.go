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

package types

import (
	"fmt"
	"strconv"
	"strings"
)

const none = "None"

// Clause labels in dump order
const (
	LabelColumns = "Columns"
	LabelFrom    = "From"
	LabelJoins   = "Joins"
	LabelWhere   = "Where Clauses"
	LabelGroupBy = "Group By"
	LabelHaving  = "Having Clauses"
	LabelOrderBy = "Order By"
	LabelLimit   = "Limit"
	LabelOffset  = "Offset"
)

// String renders the source the way it appeared in the FROM clause.
func (s Source) String() string {
	table := s.TableName
	if s.IsSubquery {
		table = "(" + table + ")"
	}
	if s.Alias == "" {
		return table
	}
	return table + " AS " + s.Alias
}

func (j Join) String() string {
	return j.Type + " JOIN " + j.Source.String() + " ON " + j.Condition
}

func (w WhereClause) String() string {
	return w.Condition
}

func (h HavingClause) String() string {
	if h.IsSubquery {
		return "HAVING Subquery: " + h.Subquery
	}
	s := h.Function + "(" + h.Field + ") " + h.Operator + " " + h.Value
	if h.LogicalOperator != "" {
		s += " " + h.LogicalOperator
	}
	return s
}

func (s Sort) String() string {
	return s.Column + " " + s.Direction
}

// String renders the multi-line debug dump of every clause.
// The layout is stable but meant for humans, not for machine parsing.
func (q *Query) String() string {
	var b strings.Builder
	b.WriteString("Query:")
	for _, row := range q.clauses() {
		b.WriteString("\n")
		b.WriteString(row[0])
		b.WriteString(": ")
		b.WriteString(row[1])
	}
	return b.String()
}

// Rows returns one {clause, value} row per clause, in dump order.
// It feeds the table renderer of the demo tool.
func (q *Query) Rows() []map[string]interface{} {
	clauses := q.clauses()
	rows := make([]map[string]interface{}, 0, len(clauses))
	for _, row := range clauses {
		rows = append(rows, map[string]interface{}{
			"clause": row[0],
			"value":  row[1],
		})
	}
	return rows
}

func (q *Query) clauses() [][2]string {
	return [][2]string{
		{LabelColumns, listOf(q.Columns)},
		{LabelFrom, listOf(q.FromSources)},
		{LabelJoins, listOf(q.Joins)},
		{LabelWhere, listOf(q.WhereClauses)},
		{LabelGroupBy, listOf(q.GroupByColumns)},
		{LabelHaving, listOf(q.HavingClauses)},
		{LabelOrderBy, listOf(q.SortColumns)},
		{LabelLimit, intOf(q.Limit)},
		{LabelOffset, intOf(q.Offset)},
	}
}

// listOf renders nil as None and anything else as [a, b].
func listOf[T any](items []T) string {
	if items == nil {
		return none
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func intOf(v *int) string {
	if v == nil {
		return none
	}
	return strconv.Itoa(*v)
}
