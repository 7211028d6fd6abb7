// Package rewrite gives relative module specifiers an explicit ".js"
// extension so that emitted files import their emitted siblings.
package rewrite

import (
	"strings"

	"github.com/tdewolff/parse/v2/js"
)

// Specifier applies the extension rule to an unquoted specifier.
//
// Bare specifiers (anything not starting with '.') and specifiers that
// already end in ".ts" or ".js" are returned unchanged. Every other
// relative specifier gets ".js" appended. The rule is textual only.
func Specifier(s string) string {
	if !strings.HasPrefix(s, ".") {
		return s
	}
	if strings.HasSuffix(s, ".ts") || strings.HasSuffix(s, ".js") {
		return s
	}
	return s + ".js"
}

// Fold returns a copy of tree whose import declarations and named
// re-exports carry rewritten specifiers. Statements without a specifier
// are shared with the input; the input tree is not modified.
func Fold(tree *js.AST) *js.AST {
	out := *tree
	out.List = make([]js.IStmt, len(tree.List))
	for i, stmt := range tree.List {
		out.List[i] = foldStmt(stmt)
	}
	return &out
}

func foldStmt(stmt js.IStmt) js.IStmt {
	switch n := stmt.(type) {
	case *js.ImportStmt:
		if n.Module == nil {
			return n
		}
		c := *n
		c.Module = literal(n.Module)
		return &c
	case *js.ExportStmt:
		// export { x } without a source, export default, export const, ...
		if n.Module == nil || isExportAll(n) {
			return n
		}
		c := *n
		c.Module = literal(n.Module)
		return &c
	default:
		return stmt
	}
}

// isExportAll reports whether n is `export * from "m"`, which names no
// bindings and is not a named re-export. `export * as ns from "m"` is.
func isExportAll(n *js.ExportStmt) bool {
	if len(n.List) != 1 {
		return false
	}
	a := n.List[0]
	return string(a.Binding) == "*" || (string(a.Name) == "*" && len(a.Binding) == 0)
}

// literal rewrites a string literal as stored in the tree, keeping its
// original quote character.
func literal(raw []byte) []byte {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		q := raw[0]
		inner := string(raw[1 : len(raw)-1])
		rewritten := Specifier(inner)
		if rewritten == inner {
			return raw
		}
		return []byte(string(q) + rewritten + string(q))
	}
	rewritten := Specifier(string(raw))
	if rewritten == string(raw) {
		return raw
	}
	return []byte(rewritten)
}
