package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"resto-backend/utils"
)

// Upload prefixes, one per feature. Files live under UPLOAD_DIR/<prefix>/
// and are served back at PUBLIC_BASE_URL + /uploads/<prefix>/<name>.
const (
	PrefixHero          = "hero"
	PrefixAbout         = "about"
	PrefixGallery       = "gallery"
	PrefixMenu          = "menu"
	PrefixOffers        = "offers"
	PrefixPaymentProofs = "payment_proofs"
)

const maxUploadBytes = 10 << 20 // 10 MB

var allowedUploadExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true, ".pdf": true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func uploadDir() string {
	return utils.EnvOrDefault("UPLOAD_DIR", "uploads")
}

func publicBaseURL() string {
	return strings.TrimRight(utils.EnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"), "/")
}

// UploadFileName derives the stored name from the original one the same way
// the site always has: timestamp, then the name with whitespace collapsed to
// underscores, then the original extension.
func UploadFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = unsafeNameChars.ReplaceAllString(strings.ReplaceAll(base, " ", "_"), "")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), base, ext)
}

// SaveUpload writes a multipart file under the given prefix and returns its
// public URL. Extension and size are checked here; the client is trusted to
// have compressed images before upload.
func SaveUpload(fh *multipart.FileHeader, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedUploadExts[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}
	if fh.Size > maxUploadBytes {
		return "", fmt.Errorf("file too large (%d bytes)", fh.Size)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(uploadDir(), prefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	name := UploadFileName(fh.Filename)
	fullpath := filepath.Join(dir, name)

	dst, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullpath)
		return "", fmt.Errorf("write file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", publicBaseURL(), prefix, name), nil
}

// StoredPathFromURL maps a public URL back to the prefix-relative path of
// the stored file ("gallery/1693....jpg"). Returns "" when the URL does not
// point into /uploads, e.g. for externally hosted images.
func StoredPathFromURL(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	const marker = "/uploads/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return ""
	}
	rel := strings.TrimPrefix(u.Path[idx+len(marker):], "/")
	// Reject anything trying to climb out of the uploads dir.
	if rel == "" || strings.Contains(rel, "..") {
		return ""
	}
	return rel
}

// RemoveStoredFile deletes the file behind a public URL. Missing files are
// not an error: the record is already going away and an orphan check has
// nothing left to do.
func RemoveStoredFile(publicURL string) error {
	rel := StoredPathFromURL(publicURL)
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(uploadDir(), filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file: %w", err)
	}
	return nil
}
