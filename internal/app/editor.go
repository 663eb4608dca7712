package app

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// editorCommand resolves the command used to open documents: the
// configured override first, then $VISUAL and $EDITOR, then vim.
// Candidates whose binary cannot be found are skipped, so a stale
// config entry degrades to the environment chain instead of failing
// every open. An empty result means nothing resolved.
func editorCommand(configured string, getenv func(string) string, lookPath func(string) (string, error)) []string {
	candidates := []string{configured, getenv("VISUAL"), getenv("EDITOR"), "vim"}
	for _, candidate := range candidates {
		args := splitCommand(candidate)
		if len(args) == 0 {
			continue
		}
		resolved, err := lookPath(args[0])
		if err != nil || resolved == "" {
			continue
		}
		args[0] = resolved
		return args
	}
	return nil
}

// splitCommand breaks a configured command line into argv, honoring
// single and double quotes so editor paths with spaces survive. The
// leading token gets ~ expansion.
func splitCommand(command string) []string {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range command {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case unicode.IsSpace(r) && !inSingle && !inDouble:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

// expandUserPath rewrites a leading ~ to the home directory. Forms it
// cannot resolve, like ~otheruser, pass through unchanged.
func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
