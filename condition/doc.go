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
Package condition compiles SQL predicate fragments taken from WHERE clauses
into expr-lang programs.

A fragment is first translated into expr-lang syntax. Keywords and operators
outside single-quoted strings are rewritten:

	a = 1 OR b <> 2       ->  a == 1 || b != 2
	name LIKE 'J%'        ->  like_match(name, 'J%')
	id NOT IN (1, 2)      ->  id not in [1, 2]
	deleted_at IS NULL    ->  deleted_at == nil

The result is compiled with undefined variables allowed, so a fragment only
has to be well formed, not bound to a schema.

	p, err := condition.Compile("book.cost > 50")
	fields, err := condition.Fields("author.id = book.author_id")
	// fields: [author.id book.author_id]

# Pattern Matching

like_match supports:

	% - Matches any sequence of characters (including empty)
	_ - Matches exactly one character
*/
package condition
