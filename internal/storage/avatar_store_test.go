package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/pkg/errors"
)

func TestAvatarStore_SaveAndPath(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir(), 1024)
	if err != nil {
		t.Fatalf("NewAvatarStore() error = %v", err)
	}

	content := "fake image bytes"
	stored, err := store.Save("selfie.PNG", int64(len(content)), strings.NewReader(content))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if stored == "selfie.PNG" {
		t.Error("Save() kept the uploaded filename")
	}
	if filepath.Ext(stored) != ".png" {
		t.Errorf("Save() stored extension = %q, want %q", filepath.Ext(stored), ".png")
	}

	user := &models.User{Username: "alice", Image: stored}
	data, err := os.ReadFile(store.Path(user))
	if err != nil {
		t.Fatalf("failed to read stored avatar: %v", err)
	}
	if string(data) != content {
		t.Errorf("stored content = %q, want %q", data, content)
	}
}

func TestAvatarStore_SaveRejectsBadUploads(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir(), 16)
	if err != nil {
		t.Fatalf("NewAvatarStore() error = %v", err)
	}

	tests := []struct {
		name     string
		filename string
		size     int64
	}{
		{
			name:     "Disallowed extension",
			filename: "payload.svg",
			size:     8,
		},
		{
			name:     "No extension",
			filename: "avatar",
			size:     8,
		},
		{
			name:     "Too large",
			filename: "big.jpg",
			size:     17,
		},
		{
			name:     "Empty file",
			filename: "empty.jpg",
			size:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(tt.filename, tt.size, strings.NewReader("x"))
			if errors.Code(err) != errors.ErrCodeValidation {
				t.Errorf("Save(%q, %d) code = %q, want %q",
					tt.filename, tt.size, errors.Code(err), errors.ErrCodeValidation)
			}
		})
	}
}

func TestAvatarStore_PathDefaultFallback(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir(), 1024)
	if err != nil {
		t.Fatalf("NewAvatarStore() error = %v", err)
	}

	user := &models.User{Username: "bob"}
	if got := store.Path(user); got != models.DefaultAvatarPath {
		t.Errorf("Path() = %q, want %q", got, models.DefaultAvatarPath)
	}
}

func TestAvatarStore_PathStripsDirectoryTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAvatarStore(dir, 1024)
	if err != nil {
		t.Fatalf("NewAvatarStore() error = %v", err)
	}

	user := &models.User{Username: "mallory", Image: "../../etc/passwd"}
	got := store.Path(user)
	if got != filepath.Join(dir, "passwd") {
		t.Errorf("Path() = %q, escaped the avatar directory", got)
	}
}

func TestAvatarStore_Remove(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir(), 1024)
	if err != nil {
		t.Fatalf("NewAvatarStore() error = %v", err)
	}

	stored, err := store.Save("pic.jpg", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Remove(stored); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.dir, stored)); !os.IsNotExist(err) {
		t.Error("avatar file still present after Remove()")
	}

	// Removing a missing or empty reference is not an error
	if err := store.Remove(stored); err != nil {
		t.Errorf("Remove(missing) error = %v", err)
	}
	if err := store.Remove(""); err != nil {
		t.Errorf("Remove(\"\") error = %v", err)
	}
}
