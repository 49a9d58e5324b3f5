package vfs

import (
	"path"
	"strings"
)

// Normalize ensures exactly one leading slash and no trailing slashes.
func Normalize(p string) string {
	p = strings.Trim(p, "/")
	return "/" + p
}

// Split breaks a path into its non-empty components.
func Split(p string) []string {
	var out []string
	for _, c := range strings.Split(p, "/") {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// joinLink rewrites a path after a symlink at dir/<link> with the remaining
// components still to walk.
func joinLink(dir []string, target string, rest []string) string {
	p := target
	if !strings.HasPrefix(target, "/") {
		p = "/" + strings.Join(dir, "/") + "/" + target
	}
	if len(rest) > 0 {
		p += "/" + strings.Join(rest, "/")
	}
	return path.Clean(p)
}
