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

package rsql

import (
	"regexp"
	"strings"
	"sync"
)

// patterns caches compiled keyword expressions, keyed by source pattern.
var patterns sync.Map

func compileCached(pattern string) *regexp.Regexp {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := patterns.LoadOrStore(pattern, regexp.MustCompile(pattern))
	return re.(*regexp.Regexp)
}

// phrase turns "GROUP BY" into GROUP\s+BY.
func phrase(keyword string) string {
	return strings.Join(strings.Fields(keyword), `\s+`)
}

// startPattern matches a keyword that opens a clause, including the whitespace after it.
func startPattern(keyword string) *regexp.Regexp {
	return compileCached(`(?i)\b` + phrase(keyword) + `\s+`)
}

// keywordPattern matches any keyword of a regex alternation as a whole word.
func keywordPattern(alternation string) *regexp.Regexp {
	alts := strings.Split(alternation, "|")
	for i, alt := range alts {
		alts[i] = phrase(alt)
	}
	return compileCached(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// scalarPattern matches a keyword followed by a run of digits.
func scalarPattern(keyword string) *regexp.Regexp {
	return compileCached(`(?i)\b` + phrase(keyword) + `\s+(\d+)`)
}

// clauseScanner finds keywords in query text, ignoring any that sit inside
// parentheses. Nested SELECTs therefore keep their clause keywords to themselves.
type clauseScanner struct {
	text  string
	depth []int
}

func newClauseScanner(text string) *clauseScanner {
	depth := make([]int, len(text))
	level := 0
	for i := 0; i < len(text); i++ {
		depth[i] = level
		switch text[i] {
		case '(':
			level++
		case ')':
			if level > 0 {
				level--
			}
		}
	}
	return &clauseScanner{text: text, depth: depth}
}

func (s *clauseScanner) topLevel(pos int) bool {
	return pos >= len(s.depth) || s.depth[pos] == 0
}

// findAll returns submatch indexes of every top-level match of re.
func (s *clauseScanner) findAll(re *regexp.Regexp) [][]int {
	var out [][]int
	for _, loc := range re.FindAllStringSubmatchIndex(s.text, -1) {
		if s.topLevel(loc[0]) {
			out = append(out, loc)
		}
	}
	return out
}

// first returns the first top-level match of re starting at or after from.
func (s *clauseScanner) first(re *regexp.Regexp, from int) []int {
	for _, loc := range s.findAll(re) {
		if loc[0] >= from {
			return loc
		}
	}
	return nil
}

// anywhere returns the first match of re starting at or after from, at any
// parenthesis depth.
func (s *clauseScanner) anywhere(re *regexp.Regexp, from int) []int {
	for _, loc := range re.FindAllStringSubmatchIndex(s.text, -1) {
		if loc[0] >= from {
			return loc
		}
	}
	return nil
}

// between returns the trimmed text after the start keyword up to the nearest
// end keyword, or to the end of the text when none follows.
func (s *clauseScanner) between(startKeyword, endKeywords string) (string, bool) {
	start := s.first(startPattern(startKeyword), 0)
	if start == nil {
		return "", false
	}
	stop := len(s.text)
	if endKeywords != "" {
		if end := s.first(keywordPattern(endKeywords), start[1]); end != nil {
			stop = end[0]
		}
	}
	return strings.TrimSpace(s.text[start[1]:stop]), true
}

// after returns the digit run following the first occurrence of keyword
// anywhere in the text, nested SELECTs included.
func (s *clauseScanner) after(keyword string) (string, bool) {
	loc := s.anywhere(scalarPattern(keyword), 0)
	if loc == nil {
		return "", false
	}
	return s.text[loc[2]:loc[3]], true
}

// ExtractBetween returns the text between the first top-level startKeyword
// (which must be followed by whitespace) and the nearest following keyword of
// the endKeywords alternation, e.g. "GROUP BY|HAVING|LIMIT". End of text also
// terminates the span. Keywords match case-insensitively as whole words.
// The second result is false when startKeyword does not occur.
// It panics if endKeywords is not a valid regular expression.
func ExtractBetween(text, startKeyword, endKeywords string) (string, bool) {
	return newClauseScanner(text).between(startKeyword, endKeywords)
}

// ExtractAfter returns the digits following the first keyword in text, as in
// "LIMIT 10". Parentheses are not taken into account.
// The second result is false when the keyword is absent or not followed by digits.
func ExtractAfter(text, keyword string) (string, bool) {
	return newClauseScanner(text).after(keyword)
}
