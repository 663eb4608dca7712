package note

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/notare-dev/notare/internal/logging"
)

// Scan walks root recursively and returns every document, newest first.
// Hidden entries are skipped (hidden directories are pruned whole). One
// unreadable file never fails the scan; it is logged and skipped.
func Scan(root string) []Note {
	var notes []Note

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.L().Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if isHiddenName(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(d.Name()) != Extension {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logging.L().Warn("skipping unstattable document", zap.String("path", path), zap.Error(err))
			return nil
		}
		notes = append(notes, Note{
			Path:     path,
			Title:    TitleFor(root, path),
			Size:     info.Size(),
			Modified: info.ModTime(),
			Tags:     readTags(path),
		})
		return nil
	})
	if walkErr != nil {
		logging.L().Warn("scan finished with errors", zap.String("root", root), zap.Error(walkErr))
	}

	SortNotes(notes, SortModified)
	return notes
}

// ScanTree walks root recursively and returns every folder and document,
// folders before documents, lexicographically by title within each class.
func ScanTree(root string) []Entry {
	var entries []Entry

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if isHiddenName(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			entries = append(entries, Entry{
				Path:  path,
				Title: TitleFor(root, path),
				IsDir: true,
			})
			return nil
		}
		if filepath.Ext(d.Name()) != Extension {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		n := Note{
			Path:     path,
			Title:    TitleFor(root, path),
			Size:     info.Size(),
			Modified: info.ModTime(),
			Tags:     readTags(path),
		}
		entries = append(entries, Entry{Path: path, Title: n.Title, Note: n})
		return nil
	})
	if walkErr != nil {
		logging.L().Warn("tree scan finished with errors", zap.String("root", root), zap.Error(walkErr))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Title < entries[j].Title
	})
	return entries
}

// ListDir filters the full tree down to the entries exactly one path
// segment below cursor ("" = root). Folders keep their lexicographic order;
// the documents that follow are ordered by the active sort policy.
func ListDir(tree []Entry, root, cursor string, mode SortMode) []Entry {
	var folders, docs []Entry
	for _, e := range tree {
		rel := relSlash(root, e.Path)
		if !oneLevelBelow(rel, cursor) {
			continue
		}
		if e.IsDir {
			folders = append(folders, e)
		} else {
			docs = append(docs, e)
		}
	}

	sortEntries(docs, mode)
	return append(folders, docs...)
}

// oneLevelBelow reports whether rel sits exactly one path segment under
// cursor, and nowhere else.
func oneLevelBelow(rel, cursor string) bool {
	if cursor == "" {
		return rel != "" && !strings.Contains(rel, "/")
	}
	prefix := cursor + "/"
	if !strings.HasPrefix(rel, prefix) {
		return false
	}
	rest := rel[len(prefix):]
	return rest != "" && !strings.Contains(rest, "/")
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
