package condition

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

var (
	// name [NOT] LIKE 'pattern'
	likeRe = regexp.MustCompile(`(?i)([\w.]+)\s+(NOT\s+)?LIKE\s+('[^']*')`)
	// [NOT] IN (a, b)
	inListRe = regexp.MustCompile(`(?i)\b(NOT\s+)?IN\s*\(([^()]*)\)`)
	// SQL words that have an expr-lang spelling
	wordRe = regexp.MustCompile(`(?i)\b(?:IS\s+NOT\s+NULL|IS\s+NULL|NOT\s+IN|NOT|IN|AND|OR|NULL|TRUE|FALSE)\b`)
)

var words = map[string]string{
	"IS NOT NULL": "!= nil",
	"IS NULL":     "== nil",
	"NOT IN":      "not in",
	"NOT":         "!",
	"IN":          "in",
	"AND":         "&&",
	"OR":          "||",
	"NULL":        "nil",
	"TRUE":        "true",
	"FALSE":       "false",
}

// Predicate 是编译为 expr-lang 程序的 WHERE 片段
type Predicate struct {
	// Source 原始 SQL 片段
	Source string
	// Expression 翻译后的 expr-lang 表达式
	Expression string
	program    *vm.Program
}

// Compile translates a SQL predicate fragment and compiles it. Identifiers
// need not be declared.
func Compile(fragment string) (*Predicate, error) {
	expression := Translate(fragment)
	program, err := expr.Compile(expression, compileOptions()...)
	if err != nil {
		return nil, err
	}
	return &Predicate{Source: fragment, Expression: expression, program: program}, nil
}

// Program returns the compiled program.
func (p *Predicate) Program() *vm.Program {
	return p.program
}

// Fields returns the column references of the predicate, see Fields.
func (p *Predicate) Fields() ([]string, error) {
	return Fields(p.Source)
}

func compileOptions() []expr.Option {
	return []expr.Option{
		expr.Function("like_match", func(params ...any) (any, error) {
			if len(params) != 2 {
				return false, fmt.Errorf("like_match function requires 2 parameters")
			}
			text, ok1 := params[0].(string)
			pattern, ok2 := params[1].(string)
			if !ok1 || !ok2 {
				return false, fmt.Errorf("like_match function requires string parameters")
			}
			return matchesLikePattern(text, pattern), nil
		}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}
}

// Translate rewrites a SQL predicate into expr-lang syntax. Text inside single
// quotes is left untouched.
//
//	a = 1 OR b <> 2       ->  a == 1 || b != 2
//	name LIKE 'J%'        ->  like_match(name, 'J%')
//	id IN (1, 2)          ->  id in [1, 2]
//	deleted_at IS NULL    ->  deleted_at == nil
func Translate(fragment string) string {
	s := likeRe.ReplaceAllStringFunc(fragment, func(m string) string {
		sub := likeRe.FindStringSubmatch(m)
		call := "like_match(" + sub[1] + ", " + sub[3] + ")"
		if sub[2] != "" {
			return "!" + call
		}
		return call
	})
	s = inListRe.ReplaceAllString(s, "${1}IN [$2]")

	segments := strings.Split(s, "'")
	for i := 0; i < len(segments); i += 2 {
		segments[i] = translateSegment(segments[i])
	}
	return strings.TrimSpace(strings.Join(segments, "'"))
}

func translateSegment(segment string) string {
	segment = strings.ReplaceAll(segment, "<>", "!=")
	segment = wordRe.ReplaceAllStringFunc(segment, func(m string) string {
		return words[strings.Join(strings.Fields(strings.ToUpper(m)), " ")]
	})

	var builder strings.Builder
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		builder.WriteByte(c)
		if c != '=' {
			continue
		}
		prevOp := i > 0 && strings.IndexByte("<>!=", segment[i-1]) >= 0
		nextEq := i+1 < len(segment) && segment[i+1] == '='
		if !prevOp && !nextEq {
			builder.WriteByte('=')
		}
	}
	return builder.String()
}

// Fields lists the identifiers and dotted member paths a predicate reads, in
// first-use order without duplicates. Function names are not included.
func Fields(fragment string) ([]string, error) {
	tree, err := parser.Parse(Translate(fragment))
	if err != nil {
		return nil, err
	}

	// inner nodes of member chains and call targets are not fields on their own
	skip := make(map[ast.Node]bool)
	ast.Walk(&tree.Node, visitor(func(node ast.Node) {
		switch n := node.(type) {
		case *ast.MemberNode:
			skip[n.Node] = true
		case *ast.CallNode:
			skip[n.Callee] = true
		}
	}))

	var fields []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			fields = append(fields, name)
		}
	}
	ast.Walk(&tree.Node, visitor(func(node ast.Node) {
		if skip[node] {
			return
		}
		switch n := node.(type) {
		case *ast.IdentifierNode:
			add(n.Value)
		case *ast.MemberNode:
			add(memberPath(n))
		}
	}))
	return fields, nil
}

// memberPath renders a.b.c, or "" when the chain is not plain identifiers.
func memberPath(node ast.Node) string {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return n.Value
	case *ast.MemberNode:
		property, ok := n.Property.(*ast.StringNode)
		if !ok {
			return ""
		}
		root := memberPath(n.Node)
		if root == "" {
			return ""
		}
		return root + "." + property.Value
	default:
		return ""
	}
}

type visitor func(node ast.Node)

func (v visitor) Visit(node *ast.Node) {
	v(*node)
}

// matchesLikePattern 实现LIKE模式匹配
// 支持%（匹配任意字符序列）和_（匹配单个字符）
func matchesLikePattern(text, pattern string) bool {
	return likeMatch(text, pattern, 0, 0)
}

// likeMatch 递归实现LIKE匹配算法
func likeMatch(text, pattern string, textIndex, patternIndex int) bool {
	if patternIndex >= len(pattern) {
		return textIndex >= len(text)
	}

	if textIndex >= len(text) {
		// 剩余的模式必须全是%
		for i := patternIndex; i < len(pattern); i++ {
			if pattern[i] != '%' {
				return false
			}
		}
		return true
	}

	switch pattern[patternIndex] {
	case '%':
		for i := textIndex; i <= len(text); i++ {
			if likeMatch(text, pattern, i, patternIndex+1) {
				return true
			}
		}
		return false
	case '_':
		return likeMatch(text, pattern, textIndex+1, patternIndex+1)
	default:
		if text[textIndex] != pattern[patternIndex] {
			return false
		}
		return likeMatch(text, pattern, textIndex+1, patternIndex+1)
	}
}
