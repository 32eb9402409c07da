package images

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalUploader_Upload(t *testing.T) {
	dir := t.TempDir()
	u, err := NewLocalUploader(dir, "/static/uploads/")
	if err != nil {
		t.Fatalf("NewLocalUploader() error = %v", err)
	}

	uri, err := u.Upload(context.Background(), "product.PNG", []byte("fake png"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasPrefix(uri, "/static/uploads/") {
		t.Errorf("uri = %q, want /static/uploads/ prefix", uri)
	}
	if !strings.HasSuffix(uri, ".png") {
		t.Errorf("uri = %q, want lowercased .png extension", uri)
	}

	stored := filepath.Join(dir, filepath.Base(uri))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake png" {
		t.Errorf("stored content = %q", data)
	}
}

func TestLocalUploader_RejectsUnknownTypes(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir(), "/static/uploads")
	if err != nil {
		t.Fatalf("NewLocalUploader() error = %v", err)
	}

	for _, name := range []string{"payload.exe", "noextension", "archive.zip"} {
		if _, err := u.Upload(context.Background(), name, []byte("x")); err == nil {
			t.Errorf("Upload(%q) succeeded, want rejection", name)
		}
	}
}

func TestLocalUploader_UniqueNames(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir(), "/static/uploads")
	if err != nil {
		t.Fatalf("NewLocalUploader() error = %v", err)
	}

	a, err := u.Upload(context.Background(), "img.jpg", []byte("a"))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	b, err := u.Upload(context.Background(), "img.jpg", []byte("b"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if a == b {
		t.Errorf("same URI for two uploads of the same file name: %q", a)
	}
}
