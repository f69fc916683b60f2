// Package query compiles the constrained selector language focal exposes
// to power users.
//
// A query is a boolean expression over a fixed set of node fields, e.g.
//
//	time > 0.5 && label contains "resize"
//	file == "grid.R" and line >= 10
//	allocated - released > 1.0
//
// Expressions are compiled with expr-lang against a closed environment, so
// query text originating from an untrusted client can only read the seven
// exposed fields; it can never reach the host program. Malformed or
// non-boolean expressions are rejected here, before the navigation core
// ever sees them.
package query

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/focal-dev/focal/internal/proftree"
)

// ErrEmptyQuery is returned for blank query text.
var ErrEmptyQuery = fmt.Errorf("empty query")

// env is the type exemplar the compiler checks expressions against. It
// mirrors proftree.ExprEnv exactly.
var env = map[string]any{
	"label":     "",
	"time":      float64(0),
	"allocated": float64(0),
	"released":  float64(0),
	"dups":      0,
	"file":      "",
	"line":      0,
}

// Compile parses query text into a tree selector. The returned selector
// matches the first pre-order node for which the expression is true.
func Compile(text string) (proftree.Selector, error) {
	src := strings.TrimSpace(text)
	if src == "" {
		return nil, ErrEmptyQuery
	}

	program, err := expr.Compile(src,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling query %q: %w", src, err)
	}

	return proftree.ByExpr(src, program), nil
}

// Fields lists the identifiers available to queries, shown by the query
// prompt's help text.
func Fields() []string {
	return []string{"label", "time", "allocated", "released", "dups", "file", "line"}
}
