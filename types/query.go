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
	"github.com/rulego/sqlclause/utils/cast"
)

// SubqueryMarker prefixes every placeholder left where a nested SELECT was found.
const SubqueryMarker = "SUBQUERY: "

// DefaultSortDirection is used when an ORDER BY key carries no direction.
const DefaultSortDirection = "ASC"

// Query is the clause-level representation of one SELECT statement.
//
// Columns and FromSources are never empty for a successfully parsed query.
// WhereClauses, HavingClauses, SortColumns, Limit and Offset are nil when the
// clause is absent. GroupByColumns and Joins are empty, never nil.
type Query struct {
	Columns        []string       `json:"columns"`
	FromSources    []Source       `json:"fromSources"`
	Joins          []Join         `json:"joins"`
	WhereClauses   []WhereClause  `json:"whereClauses,omitempty"`
	GroupByColumns []string       `json:"groupByColumns"`
	HavingClauses  []HavingClause `json:"havingClauses,omitempty"`
	SortColumns    []Sort         `json:"sortColumns,omitempty"`
	Limit          *int           `json:"limit,omitempty"`
	Offset         *int           `json:"offset,omitempty"`

	// ColumnQueries holds the parsed column subqueries keyed by alias.
	// Only populated when nested query retention is enabled.
	ColumnQueries map[string]*Query `json:"columnQueries,omitempty"`
}

// HasWhere reports whether the query carried a WHERE clause
func (q *Query) HasWhere() bool {
	return q.WhereClauses != nil
}

// HasHaving reports whether the query carried a HAVING clause
func (q *Query) HasHaving() bool {
	return q.HavingClauses != nil
}

// Source is one FROM contributor: a table reference or a parenthesized SELECT.
// When IsSubquery is set, TableName holds the raw inner SELECT text.
type Source struct {
	TableName  string `json:"tableName"`
	Alias      string `json:"alias,omitempty"`
	IsSubquery bool   `json:"isSubquery"`
	// Query is the parsed subquery, kept only when nested retention is enabled.
	Query *Query `json:"query,omitempty"`
}

// NewSource builds a plain table source.
func NewSource(tableName, alias string) Source {
	return Source{TableName: tableName, Alias: alias}
}

// NewSubquerySource builds a source backed by a parenthesized SELECT.
func NewSubquerySource(subquery, alias string) Source {
	return Source{TableName: subquery, Alias: alias, IsSubquery: true}
}

// HasAlias reports whether an alias was given
func (s Source) HasAlias() bool {
	return s.Alias != ""
}

// Join is one typed JOIN with its raw ON condition.
type Join struct {
	// Type is one of INNER, LEFT, RIGHT, FULL.
	Type      string `json:"type"`
	Source    Source `json:"source"`
	Condition string `json:"condition"`
}

// WhereClause is either a raw predicate fragment or a subquery marker
// standing in for the whole WHERE clause.
type WhereClause struct {
	Condition  string `json:"condition"`
	IsSubquery bool   `json:"isSubquery,omitempty"`
	// Subquery is the inner SELECT text when IsSubquery is set.
	Subquery string `json:"subquery,omitempty"`
	Query    *Query `json:"query,omitempty"`
}

// NewWhereClause wraps a raw predicate fragment.
func NewWhereClause(condition string) WhereClause {
	return WhereClause{Condition: condition}
}

// NewWhereSubquery marks the whole WHERE clause as occupied by a subquery.
func NewWhereSubquery(subquery string) WhereClause {
	return WhereClause{
		Condition:  SubqueryMarker + subquery,
		IsSubquery: true,
		Subquery:   subquery,
	}
}

// HavingClause is either a decomposed aggregate predicate
// (FUNCTION(field) OP value) or a subquery marker.
//
// LogicalOperator is the single operator found in the whole HAVING text and is
// identical on every decomposed entry of one query.
type HavingClause struct {
	Function        string `json:"function,omitempty"`
	Field           string `json:"field,omitempty"`
	Operator        string `json:"operator,omitempty"`
	Value           string `json:"value,omitempty"`
	LogicalOperator string `json:"logicalOperator,omitempty"`
	IsSubquery      bool   `json:"isSubquery,omitempty"`
	Subquery        string `json:"subquery,omitempty"`
	Query           *Query `json:"query,omitempty"`
}

// NewHavingSubquery marks the whole HAVING clause as occupied by a subquery.
func NewHavingSubquery(subquery string) HavingClause {
	return HavingClause{IsSubquery: true, Subquery: subquery}
}

// Threshold returns the compared literal as a float64.
func (h HavingClause) Threshold() (float64, error) {
	return cast.ToFloat(h.Value)
}

// Sort is one ORDER BY key.
type Sort struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// NewSort builds a sort key, defaulting the direction to ASC.
func NewSort(column, direction string) Sort {
	if direction == "" {
		direction = DefaultSortDirection
	}
	return Sort{Column: column, Direction: direction}
}
