// Copyright (c) 2026 Frank Corso
//
// sanitize.go — namespace and directory sanitization guarding the persisted
// file location against traversal outside the process's working tree.

package lightcache

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// DefaultNamespace is substituted when sanitization leaves an empty
	// namespace.
	DefaultNamespace = "general_cache"

	// DefaultDirectory is substituted when a directory resolves outside the
	// working tree.
	DefaultDirectory = ".cache"
)

// sanitizeNamespace lower-cases ns, strips any directory components, and
// keeps only letters, digits, underscore, and hyphen. It reports false when
// nothing survived and the default was substituted.
func sanitizeNamespace(ns string) (string, bool) {
	base := filepath.Base(strings.ToLower(ns))

	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return DefaultNamespace, false
	}
	return b.String(), true
}

// sanitizeDirectory resolves dir to an absolute, symlink-resolved path and
// verifies it falls under the working directory, returning it relative to
// the working directory. Anything that escapes the working tree is replaced
// by DefaultDirectory; that case reports false. The empty string and "."
// both mean the working directory itself.
func sanitizeDirectory(dir string) (string, bool) {
	if dir == "" || dir == "." {
		return ".", true
	}

	cwd, err := os.Getwd()
	if err != nil {
		return DefaultDirectory, false
	}
	cwd = resolvePath(cwd)

	abs := dir
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, abs)
	}
	real := resolvePath(abs)

	rel, err := filepath.Rel(cwd, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return DefaultDirectory, false
	}
	if rel == "." {
		return DefaultDirectory, true
	}
	return rel, true
}

// resolvePath resolves symlinks for paths that may not exist yet: the
// nearest existing ancestor is resolved and the remaining components are
// joined back on, mirroring what the OS would create.
func resolvePath(path string) string {
	path = filepath.Clean(path)

	suffix := ""
	for p := path; ; {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(resolved, suffix)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return path
		}
		suffix = filepath.Join(filepath.Base(p), suffix)
		p = parent
	}
}
