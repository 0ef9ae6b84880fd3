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

package sqlclause

import (
	"io"

	"github.com/rulego/sqlclause/logger"
)

// Option 表示对解析器默认行为的修改配置。
type Option func(*SQLClause)

// WithLogger 设置自定义日志记录器。
// 允许用户提供自己的日志实现，例如 logger.NewLogrusLogger。
//
// 示例:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	sc := sqlclause.New(sqlclause.WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(s *SQLClause) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLogLevel 设置日志级别。
// 作用于当前实例的日志记录器，未设置 WithLogger 时即为全局默认记录器。
//
// 示例:
//
//	// 打印每个子句窗口
//	sc := sqlclause.New(sqlclause.WithLogLevel(logger.DEBUG))
func WithLogLevel(level logger.Level) Option {
	return func(s *SQLClause) {
		s.log.SetLevel(level)
	}
}

// WithLogOutput 设置日志输出目标。
//
// 示例:
//
//	sc := sqlclause.New(sqlclause.WithLogOutput(os.Stderr, logger.WARN))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(s *SQLClause) {
		s.log = logger.NewNamedLogger("sqlclause", level, output)
	}
}

// WithDiscardLog 禁用所有日志输出。
func WithDiscardLog() Option {
	return func(s *SQLClause) {
		s.log = logger.NewDiscardLogger()
	}
}

// WithNestedQueries 保留子查询的解析结果。
// 默认情况下子查询只做校验性解析，结果中只留下标记或原始文本。
func WithNestedQueries() Option {
	return func(s *SQLClause) {
		s.keepNested = true
	}
}

// WithPredicateCheck 将每个 WHERE 片段编译为 expr-lang 表达式，
// 无法编译时解析失败。
func WithPredicateCheck() Option {
	return func(s *SQLClause) {
		s.checkPredicate = true
	}
}

// WithSubqueryHook 在解析每个子查询之前回调 fn，depth 从 1 开始。
//
// 示例:
//
//	count := 0
//	sc := sqlclause.New(sqlclause.WithSubqueryHook(func(depth int, sql string) {
//		count++
//	}))
func WithSubqueryHook(fn func(depth int, sql string)) Option {
	return func(s *SQLClause) {
		s.onSubquery = fn
	}
}
