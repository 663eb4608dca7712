// Package note indexes and manipulates the markdown documents under the
// notes root: scanning, front-matter tags, directory listings, and the
// create/rename/delete file operations.
package note

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Extension is the document file extension; everything else is a folder or
// ignored.
const Extension = ".md"

// Note is one indexed document. Identity is the absolute path; the body is
// not stored here but in the content cache, keyed by the same path.
type Note struct {
	Path     string // absolute
	Title    string // root-relative, extension stripped, slash-separated
	Size     int64
	Modified time.Time
	Tags     []string
}

// Entry is a single browsable item: a folder or a document.
type Entry struct {
	Path  string // absolute
	Title string // root-relative, slash-separated (extension stripped for documents)
	IsDir bool
	Note  Note // zero value for folders
}

// FromPath builds a Note for an existing file.
func FromPath(root, path string) (Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Note{}, err
	}
	return Note{
		Path:     path,
		Title:    TitleFor(root, path),
		Size:     info.Size(),
		Modified: info.ModTime(),
		Tags:     readTags(path),
	}, nil
}

// TitleFor derives the display title: the path relative to root with the
// document extension stripped, normalized to NFC and forward slashes.
func TitleFor(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, Extension)
	return norm.NFC.String(filepath.ToSlash(rel))
}

type frontMatter struct {
	Tags []string `yaml:"tags"`
}

// readTags extracts the tag list from a leading front-matter block. It reads
// only the header lines, never the body. Any trouble (no header, unreadable
// file, malformed YAML) degrades to an empty tag set.
func readTags(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil
	}

	var header strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		header.WriteString(line)
		header.WriteByte('\n')
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(header.String()), &fm); err != nil {
		return nil
	}
	return fm.Tags
}

func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}
