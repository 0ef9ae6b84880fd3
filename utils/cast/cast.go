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

// Package cast holds the strict literal conversions used by the clause parsers.
package cast

import (
	"fmt"
	"strings"

	spfcast "github.com/spf13/cast"
)

const digits = "0123456789"

// ToInt converts an unsigned decimal literal such as "10" or "007".
// Anything else, including hex or signed input, is rejected.
func ToInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, digits) != "" {
		return 0, fmt.Errorf("invalid integer literal %q", s)
	}
	// spf13/cast parses with base 0, strip leading zeros so "010" stays decimal
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	v, err := spfcast.ToIntE(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", s, err)
	}
	return v, nil
}

// ToFloat converts numbers and numeric strings to float64.
func ToFloat(x any) (float64, error) {
	if s, ok := x.(string); ok {
		x = strings.TrimSpace(s)
	}
	return spfcast.ToFloat64E(x)
}

func ToString(arg any) string {
	return spfcast.ToString(arg)
}
