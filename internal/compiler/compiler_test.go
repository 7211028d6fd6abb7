package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEsbuildCompiler(t *testing.T) *Compiler {
	t.Helper()
	return newCompiler(t, TranspilerEsbuild, TranspileOptions{})
}

func newCompiler(t *testing.T, name string, opts TranspileOptions) *Compiler {
	t.Helper()
	tr, err := NewTranspiler(name, opts)
	require.NoError(t, err)
	return New(tr)
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompileRewritesRelativeImports(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ts", `import { x } from "./b";
import z from "pkg";

export const y: number = x + z;
`)

	out, err := newEsbuildCompiler(t).Compile(context.Background(), path)
	require.NoError(t, err)

	js := string(out)
	assert.Contains(t, js, `"./b.js"`)
	assert.Contains(t, js, `"pkg"`)
	assert.NotContains(t, js, `"./b"`)
	assert.NotContains(t, js, "number")
}

func TestCompileStripsTypes(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "b.ts", `interface Point { x: number; y: number }
type Id = string;
export function norm(p: Point): number {
  return Math.sqrt(p.x * p.x + p.y * p.y);
}
`)

	out, err := newEsbuildCompiler(t).Compile(context.Background(), path)
	require.NoError(t, err)

	js := string(out)
	assert.Contains(t, js, "norm")
	assert.Contains(t, js, "Math.sqrt")
	assert.NotContains(t, js, "interface")
	assert.NotContains(t, js, "Point")
	assert.NotContains(t, js, "Id")
}

func TestCompileRewritesReExports(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "index.ts", `export { a } from "./a";
export { b } from "./b.js";
export { c } from "lib";
`)

	out, err := newEsbuildCompiler(t).Compile(context.Background(), path)
	require.NoError(t, err)

	js := string(out)
	assert.Contains(t, js, `"./a.js"`)
	assert.Contains(t, js, `"./b.js"`)
	assert.NotContains(t, js, `"./b.js.js"`)
	assert.Contains(t, js, `"lib"`)
}

func TestCompileKeepsUnusedImports(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ts", `import { x } from "./b";
import z from "pkg";
`)

	for _, name := range ValidTranspilers {
		t.Run(name, func(t *testing.T) {
			out, err := newCompiler(t, name, TranspileOptions{}).Compile(context.Background(), path)
			require.NoError(t, err)

			js := string(out)
			assert.Contains(t, js, `import { x } from "./b.js";`)
			assert.Contains(t, js, `import z from "pkg";`)
		})
	}
}

func TestCompileElideUnusedImports(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ts", `import { unused } from "./dep";
export const n = 1;
`)

	out, err := newCompiler(t, TranspilerEsbuild, TranspileOptions{ElideUnusedImports: true}).
		Compile(context.Background(), path)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "./dep")
	assert.Contains(t, string(out), "export const n = 1;")
}

func TestCompileDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ts", `import { x } from "./b";
export default function f(n: number) { return x * n; }
`)

	c := newEsbuildCompiler(t)
	first, err := c.Compile(context.Background(), path)
	require.NoError(t, err)
	second, err := c.Compile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Both backends must emit the same bytes for the same source.
func TestCompileGolden(t *testing.T) {
	sources := map[string]string{
		"imports": `import { x } from "./b";
import z from "pkg";
`,
		"reexports": `export { a } from "./a";
export { b as c } from "./b.js";
export * from "./all";
export * as ns from "./ns";
import "./side-effect";
`,
		"types": `import type { T } from "./types";
import { type U, v } from "./mixed";
export const n: number = v;
`,
	}

	for _, name := range ValidTranspilers {
		for fixture, src := range sources {
			t.Run(name+"/"+fixture, func(t *testing.T) {
				path := writeSource(t, t.TempDir(), fixture+".ts", src)
				out, err := newCompiler(t, name, TranspileOptions{}).Compile(context.Background(), path)
				require.NoError(t, err)
				golden(t).Assert(t, fixture, out)
			})
		}
	}
}

func TestCompileParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.ts", "const = ;\n")

	_, err := newEsbuildCompiler(t).Compile(context.Background(), path)
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.File)
	assert.Equal(t, 1, pe.Line)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "bad.ts:1:")
}

func TestCompileTSCRejectsMalformedSource(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.ts", "let x: = 1;\nfunction (\n")

	out, err := newCompiler(t, TranspilerTSC, TranspileOptions{}).Compile(context.Background(), path)
	require.Error(t, err)
	assert.Nil(t, out)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.File)
	assert.Equal(t, 1, pe.Line)
	assert.Greater(t, pe.Column, 0)
}

func TestCompileTSC(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ts", `import { x } from "./b";
export function double(n: number): number { return x * n; }
`)

	out, err := newCompiler(t, TranspilerTSC, TranspileOptions{}).Compile(context.Background(), path)
	require.NoError(t, err)

	js := string(out)
	assert.Contains(t, js, `"./b.js"`)
	assert.Contains(t, js, "double")
	assert.NotContains(t, js, "number")
}

func TestCompileMissingFile(t *testing.T) {
	_, err := newEsbuildCompiler(t).Compile(context.Background(), filepath.Join(t.TempDir(), "missing.ts"))
	require.Error(t, err)
	assert.False(t, IsParseError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompileInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.ts")
	content := append([]byte(`export const s = "caf`), 0xe9, '"', ';', '\n')
	require.NoError(t, os.WriteFile(path, content, 0644))

	out, err := newEsbuildCompiler(t).Compile(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, string(out), "caf")
}

func TestDecodeLossy(t *testing.T) {
	assert.Equal(t, "abc", decodeLossy([]byte("abc")))
	assert.Equal(t, "a\uFFFDb", decodeLossy([]byte{'a', 0xff, 'b'}))
	assert.Equal(t, "héllo", decodeLossy([]byte("héllo")))
}

func TestReadSourceMissing(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "nope.ts"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "reading source"))
}

func TestNewTranspiler(t *testing.T) {
	tr, err := NewTranspiler("", TranspileOptions{})
	require.NoError(t, err)
	assert.IsType(t, &EsbuildTranspiler{}, tr)

	tr, err = NewTranspiler(TranspilerTSC, TranspileOptions{ElideUnusedImports: true})
	require.NoError(t, err)
	tsc, ok := tr.(*TSCTranspiler)
	require.True(t, ok)
	assert.True(t, tsc.ElideUnusedImports)

	_, err = NewTranspiler("swc", TranspileOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transpiler")
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{File: "a.ts", Message: "unexpected token"}
	assert.Equal(t, "a.ts: unexpected token", err.Error())

	err = &ParseError{File: "a.ts", Line: 3, Column: 7, Message: "unexpected token"}
	assert.Equal(t, "a.ts:3:7: unexpected token", err.Error())
}
