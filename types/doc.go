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
Package types defines the clause-level model produced by the parser.

	type Query struct {
		Columns        []string       // projection list, or one "SUBQUERY: alias" marker
		FromSources    []Source       // FROM contributors
		Joins          []Join         // typed JOINs in statement order
		WhereClauses   []WhereClause  // AND-separated fragments, nil when absent
		GroupByColumns []string       // empty when absent
		HavingClauses  []HavingClause // aggregate predicates, nil when absent
		SortColumns    []Sort         // ORDER BY keys, nil when absent
		Limit, Offset  *int           // nil when absent
	}

Every type has a String method; (*Query).String renders the multi-line dump

	Query:
	Columns: [author.name]
	From: [author]
	Joins: []
	Where Clauses: None
	...

and Rows returns the same content as clause/value rows for table output.
The JSON tags use camelCase field names.
*/
package types
