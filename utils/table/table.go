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

package table

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// minWidth 最小列宽
const minWidth = 4

// PrintTableFromSlice prints rows to stdout, see Fprint
func PrintTableFromSlice(data []map[string]interface{}, fieldOrder []string) {
	Fprint(os.Stdout, data, fieldOrder)
}

// Fprint writes rows as a bordered text table.
// Columns follow fieldOrder; columns missing from it are appended in
// alphabetical order. Nothing is written for empty data.
func Fprint(w io.Writer, data []map[string]interface{}, fieldOrder []string) {
	if len(data) == 0 {
		return
	}

	columns := columnsOf(data, fieldOrder)

	colWidths := make([]int, len(columns))
	for i, col := range columns {
		colWidths[i] = len(col)
		for _, row := range data {
			if val, exists := row[col]; exists {
				if n := len(fmt.Sprintf("%v", val)); n > colWidths[i] {
					colWidths[i] = n
				}
			}
		}
		if colWidths[i] < minWidth {
			colWidths[i] = minWidth
		}
	}

	FprintBorder(w, colWidths)
	fmt.Fprint(w, "|")
	for i, col := range columns {
		fmt.Fprintf(w, " %-*s |", colWidths[i], col)
	}
	fmt.Fprintln(w)
	FprintBorder(w, colWidths)

	for _, row := range data {
		fmt.Fprint(w, "|")
		for i, col := range columns {
			val := ""
			if v, exists := row[col]; exists {
				val = fmt.Sprintf("%v", v)
			}
			fmt.Fprintf(w, " %-*s |", colWidths[i], val)
		}
		fmt.Fprintln(w)
	}

	FprintBorder(w, colWidths)
	fmt.Fprintf(w, "(%d rows)\n", len(data))
}

func columnsOf(data []map[string]interface{}, fieldOrder []string) []string {
	columnSet := make(map[string]bool)
	for _, row := range data {
		for col := range row {
			columnSet[col] = true
		}
	}

	columns := make([]string, 0, len(columnSet))
	for _, field := range fieldOrder {
		if columnSet[field] {
			columns = append(columns, field)
			delete(columnSet, field)
		}
	}
	rest := make([]string, 0, len(columnSet))
	for col := range columnSet {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

// PrintTableBorder prints a border line to stdout
func PrintTableBorder(columnWidths []int) {
	FprintBorder(os.Stdout, columnWidths)
}

// FprintBorder writes a +----+ border line
func FprintBorder(w io.Writer, columnWidths []int) {
	var b strings.Builder
	b.WriteString("+")
	for _, width := range columnWidths {
		b.WriteString(strings.Repeat("-", width+2))
		b.WriteString("+")
	}
	fmt.Fprintln(w, b.String())
}
