// Package compiler turns one TypeScript source file into JavaScript.
//
// Compilation is three steps over a single file:
//
//  1. Parse: the file is read (invalid UTF-8 becomes U+FFFD), its type
//     syntax is stripped by a Transpiler, and the resulting JavaScript is
//     parsed into a syntax tree.
//  2. Rewrite: rewrite.Fold gives relative import and re-export
//     specifiers an explicit ".js" extension.
//  3. Emit: the tree is printed back to bytes.
//
// The syntax tree is owned by a single Compile call and never shared.
// A Compiler holds no mutable state and may be used from several
// goroutines at once.
package compiler
