package note

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateSanitizesAndEnsuresExtension(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "plain", input: "ideas", expect: "ideas.md"},
		{name: "spaces", input: "meeting notes", expect: "meeting_notes.md"},
		{name: "already suffixed", input: "todo.md", expect: "todo.md"},
		{name: "surrounding whitespace", input: "  padded  ", expect: "padded.md"},
		{name: "nested path", input: "work/project a", expect: filepath.Join("work", "project_a.md")},
	}

	for _, tt := range tests {
		path, err := Create(dir, tt.input)
		if err != nil {
			t.Fatalf("%s: Create failed: %v", tt.name, err)
		}
		if path != filepath.Join(dir, tt.expect) {
			t.Errorf("%s: expected %q, got %q", tt.name, filepath.Join(dir, tt.expect), path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s: created file missing: %v", tt.name, err)
		}
	}
}

func TestCreateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	if _, err := Create(dir, "once"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := Create(dir, "once")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	if _, err := Create(t.TempDir(), "   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestCreateFolder(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateFolder(dir, "project x")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if path != filepath.Join(dir, "project_x") {
		t.Errorf("expected sanitized folder name, got %q", path)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %q: %v", path, err)
	}

	if _, err := CreateFolder(dir, "project x"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists on duplicate folder, got %v", err)
	}
}

func TestRenamePreservesContent(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "draft.md")
	writeFile(t, oldPath, "original bytes\n")

	newPath, err := Rename(oldPath, "final", false)
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if newPath != filepath.Join(dir, "final.md") {
		t.Errorf("expected final.md, got %q", newPath)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Errorf("old path still exists")
	}
	data, err := os.ReadFile(newPath)
	if err != nil || string(data) != "original bytes\n" {
		t.Errorf("content not preserved: %q, %v", data, err)
	}
}

func TestRenameUpwardTraversal(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "work", "item.md")
	writeFile(t, oldPath, "x\n")

	newPath, err := Rename(oldPath, "../promoted", false)
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if newPath != filepath.Join(dir, "promoted.md") {
		t.Errorf("expected promotion to parent, got %q", newPath)
	}
}

func TestRenameIntoNewSubfolder(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "work", "item.md")
	writeFile(t, oldPath, "x\n")

	newPath, err := Rename(oldPath, "archive/2026/item", false)
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if newPath != filepath.Join(dir, "work", "archive", "2026", "item.md") {
		t.Errorf("expected nested target, got %q", newPath)
	}
}

func TestRenameRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "a\n")
	writeFile(t, filepath.Join(dir, "b.md"), "b\n")

	if _, err := Rename(filepath.Join(dir, "a.md"), "b", false); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "b.md")); string(data) != "b\n" {
		t.Errorf("target was clobbered")
	}
}

func TestRenameFolderSkipsExtension(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "projects")
	if err := os.Mkdir(oldPath, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	newPath, err := Rename(oldPath, "archive", true)
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if newPath != filepath.Join(dir, "archive") {
		t.Errorf("folder rename got extension: %q", newPath)
	}
}

func TestDeleteFileAndFolder(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "gone.md")
	writeFile(t, filePath, "x\n")
	if err := Delete(filePath, false); err != nil {
		t.Fatalf("Delete file failed: %v", err)
	}
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		t.Errorf("file still present after delete")
	}

	nested := filepath.Join(dir, "stack", "deep", "leaf.md")
	writeFile(t, nested, "x\n")
	if err := Delete(filepath.Join(dir, "stack"), true); err != nil {
		t.Fatalf("Delete folder failed: %v", err)
	}
	if _, err := os.Stat(nested); !os.IsNotExist(err) {
		t.Errorf("nested path survived folder delete")
	}
	if _, err := os.Stat(filepath.Join(dir, "stack")); !os.IsNotExist(err) {
		t.Errorf("folder itself survived delete")
	}
}
