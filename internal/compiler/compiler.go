package compiler

import (
	"bytes"
	"context"
	"errors"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/roach88/gkc/internal/rewrite"
)

// Compiler compiles single source files.
type Compiler struct {
	Transpiler Transpiler
}

// New creates a Compiler using t to strip types.
func New(t Transpiler) *Compiler {
	return &Compiler{Transpiler: t}
}

// Compile reads the file at path and returns the emitted JavaScript.
//
// Returns a *ParseError if the contents are not valid TypeScript and a
// wrapped filesystem error if the file cannot be read.
func (c *Compiler) Compile(ctx context.Context, path string) ([]byte, error) {
	src, err := ReadSource(path)
	if err != nil {
		return nil, err
	}

	tree, err := c.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}

	return Emit(rewrite.Fold(tree)), nil
}

// Parse strips types from src and parses the result into a syntax tree.
// file is used for error messages only.
func (c *Compiler) Parse(ctx context.Context, file, src string) (*js.AST, error) {
	code, err := c.Transpiler.Transpile(ctx, file, src)
	if err != nil {
		return nil, err
	}

	tree, err := js.Parse(parse.NewInputString(code), js.Options{})
	if err != nil {
		pe := &ParseError{File: file, Message: err.Error()}
		var perr *parse.Error
		if errors.As(err, &perr) {
			pe.Message = perr.Message
			pe.Line = perr.Line
			pe.Column = perr.Column
		}
		return nil, pe
	}
	return tree, nil
}

// Emit prints tree as JavaScript. The same tree always yields the same
// bytes.
func Emit(tree *js.AST) []byte {
	var buf bytes.Buffer
	tree.JS(&buf)
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
