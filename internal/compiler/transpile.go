package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/clarkmcc/go-typescript"
	"github.com/evanw/esbuild/pkg/api"
)

// Transpiler strips type syntax from TypeScript, leaving JavaScript with
// ES module import and export statements intact.
type Transpiler interface {
	Transpile(ctx context.Context, file, src string) (string, error)
}

// Transpiler names accepted by NewTranspiler.
const (
	TranspilerEsbuild = "esbuild"
	TranspilerTSC     = "tsc"
)

// ValidTranspilers lists the accepted transpiler names.
var ValidTranspilers = []string{TranspilerEsbuild, TranspilerTSC}

// TranspileOptions configures a Transpiler.
type TranspileOptions struct {
	// ElideUnusedImports drops value imports that nothing references once
	// types are gone, as tsc does without verbatimModuleSyntax. By default
	// every import statement survives so its specifier can be rewritten.
	ElideUnusedImports bool
}

// NewTranspiler returns the transpiler registered under name.
func NewTranspiler(name string, opts TranspileOptions) (Transpiler, error) {
	switch name {
	case TranspilerEsbuild, "":
		return &EsbuildTranspiler{ElideUnusedImports: opts.ElideUnusedImports}, nil
	case TranspilerTSC:
		return &TSCTranspiler{ElideUnusedImports: opts.ElideUnusedImports}, nil
	default:
		return nil, fmt.Errorf("unknown transpiler %q: must be one of %v", name, ValidTranspilers)
	}
}

// EsbuildTranspiler strips types with esbuild's transform API.
// Module format and target are preserved (no downleveling).
type EsbuildTranspiler struct {
	ElideUnusedImports bool
}

// Transpile implements Transpiler.
func (t *EsbuildTranspiler) Transpile(_ context.Context, file, src string) (string, error) {
	result := api.Transform(src, esbuildOptions(file, t.ElideUnusedImports))
	if len(result.Errors) > 0 {
		return "", esbuildError(file, result.Errors[0])
	}
	return string(result.Code), nil
}

func esbuildOptions(file string, elide bool) api.TransformOptions {
	opts := api.TransformOptions{
		Loader:     api.LoaderTS,
		Format:     api.FormatDefault,
		Target:     api.ESNext,
		Sourcefile: file,
		LogLevel:   api.LogLevelSilent,
	}
	if !elide {
		opts.TsconfigRaw = `{"compilerOptions":{"verbatimModuleSyntax":true}}`
	}
	return opts
}

func esbuildError(file string, msg api.Message) *ParseError {
	pe := &ParseError{File: file, Message: msg.Text}
	if msg.Location != nil {
		pe.Line = msg.Location.Line
		pe.Column = msg.Location.Column + 1
	}
	return pe
}

// TSCTranspiler runs the TypeScript compiler's transpile step inside an
// embedded JavaScript runtime. It is much slower than esbuild but matches
// tsc output exactly.
//
// tsc's transpile step emits best-effort output for malformed input and
// the embedding does not surface diagnostics, so sources are syntax-checked
// with esbuild first.
type TSCTranspiler struct {
	ElideUnusedImports bool
}

// Transpile implements Transpiler.
func (t *TSCTranspiler) Transpile(ctx context.Context, file, src string) (string, error) {
	if err := checkSyntax(file, src); err != nil {
		return "", err
	}

	// The bundled compiler predates verbatimModuleSyntax; preserveValueImports
	// is its equivalent for keeping unused value imports.
	compileOptions := map[string]interface{}{
		"module":          "ESNext",
		"target":          "ESNext",
		"isolatedModules": true,
	}
	if !t.ElideUnusedImports {
		compileOptions["preserveValueImports"] = true
	}

	out, err := typescript.TranspileCtx(ctx, strings.NewReader(src),
		typescript.WithCompileOptions(compileOptions))
	if err != nil {
		return "", &ParseError{File: file, Message: err.Error()}
	}
	return out, nil
}

// checkSyntax reports the first syntax error in src, if any.
func checkSyntax(file, src string) error {
	result := api.Transform(src, esbuildOptions(file, false))
	if len(result.Errors) > 0 {
		return esbuildError(file, result.Errors[0])
	}
	return nil
}
