// Package workspace finds the packages of a multi-package workspace.
//
// The workspace root holds a manifest (pnpm-workspace.yaml by default):
//
//	packages:
//	  - packages/*
//	  - tools/**
//	skip-ts:
//	  - tools/**
//
// Each pattern under packages is expanded relative to the root; every
// matching directory becomes one Package. Patterns listed verbatim under
// skip-ts are dropped before expansion. Other top-level keys are ignored.
package workspace
