package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoredPathFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "gallery file",
			url:  "http://localhost:8080/uploads/gallery/1693000000-dining_room.jpg",
			want: "gallery/1693000000-dining_room.jpg",
		},
		{
			name: "payment proof",
			url:  "https://baroesa.example.com/uploads/payment_proofs/1693000000-budi.pdf",
			want: "payment_proofs/1693000000-budi.pdf",
		},
		{
			name: "external image",
			url:  "https://cdn.example.com/images/foo.jpg",
			want: "",
		},
		{
			name: "traversal attempt",
			url:  "http://localhost:8080/uploads/../etc/passwd",
			want: "",
		},
		{
			name: "not a url",
			url:  "://bogus",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StoredPathFromURL(tt.url); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestUploadFileName(t *testing.T) {
	got := UploadFileName("My Holiday Photo.JPG")
	if !strings.HasSuffix(got, ".jpg") {
		t.Fatalf("expected lowercase .jpg suffix, got %q", got)
	}
	if strings.Contains(got, " ") {
		t.Fatalf("expected no spaces, got %q", got)
	}
	if !strings.Contains(got, "My_Holiday_Photo") {
		t.Fatalf("expected sanitized base name, got %q", got)
	}
}

func TestRemoveStoredFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	if err := os.MkdirAll(filepath.Join(dir, "menu"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	stored := filepath.Join(dir, "menu", "123-mie_aceh.jpg")
	if err := os.WriteFile(stored, []byte("img"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := RemoveStoredFile("http://localhost:8080/uploads/menu/123-mie_aceh.jpg"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err %v", err)
	}

	// Missing files and foreign URLs are not errors.
	if err := RemoveStoredFile("http://localhost:8080/uploads/menu/gone.jpg"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if err := RemoveStoredFile("https://cdn.example.com/foo.jpg"); err != nil {
		t.Fatalf("remove foreign: %v", err)
	}
}
