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
Package rsql splits a SELECT statement into its clauses.

The parser is a keyword-window splitter rather than a grammar. Every clause is
taken from the full statement text independently: the span starts after the
clause keyword and stops at the nearest keyword that may follow it, or at the
end of the text. Nothing is consumed, so clauses must appear in standard order.

# Clause Windows

	SELECT   ... FROM
	FROM     ... WHERE | [INNER|LEFT|RIGHT|FULL] JOIN | GROUP BY | HAVING | ORDER BY | LIMIT | OFFSET
	WHERE    ... GROUP BY | HAVING | ORDER BY | LIMIT | OFFSET
	GROUP BY ... HAVING | ORDER BY | LIMIT | OFFSET
	HAVING   ... ORDER BY | LIMIT | OFFSET
	ORDER BY ... LIMIT | OFFSET

Keywords match case-insensitively on word boundaries. Clause windows only see
keywords outside parentheses, so a nested SELECT keeps its own clauses. JOINs,
LIMIT and OFFSET are scanned over the whole statement text, parentheses
included: a LIMIT that only appears inside a subquery is reported for the outer
query too.

# Subqueries

A parenthesized SELECT found in the column list, FROM, WHERE, HAVING or a JOIN
source is parsed recursively. By default only a marker survives in the outer
result ("SUBQUERY: alias" for columns, the raw text elsewhere); WithNestedQueries
keeps the nested *types.Query as well. Errors in a nested SELECT fail the whole
parse.

# Usage

	query, err := rsql.Parse("SELECT name FROM author WHERE age > 30 ORDER BY name DESC LIMIT 5")
	if err != nil {
		var perr *rsql.ParseError
		if errors.As(err, &perr) {
			fmt.Println(perr.Detail())
		}
		return
	}
	fmt.Println(query)

# Errors

Every failure is a *ParseError whose Error() is a fixed message such as
"Missing FROM clause.". Match kinds with errors.Is against ErrMissingFrom,
ErrMissingColumns, ErrInvalidHaving, ErrInvalidNumber and the other sentinels.
Panics raised while a clause is parsed are recovered into that clause's error.

# Predicates

WHERE fragments stay raw text. PredicateExpr, PredicateFields and
CheckPredicate analyse them through the condition package, and
WithPredicateCheck rejects fragments that do not compile.
*/
package rsql
