package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"catalogo/internal/domain"
	"catalogo/internal/objstore"
)

// ─────────────────────────────────────────────────────────────
// Upload service — validates, names and stores row files
// ─────────────────────────────────────────────────────────────

// Placeholder URLs returned in simulation mode (upload disabled or no
// client configured), one per category. Tests assert on these.
const (
	PlaceholderImageURL = "https://via.placeholder.com/600x400.png"
	PlaceholderPDFURL   = "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf"
	PlaceholderVideoURL = "https://samplelib.com/lib/preview/mp4/sample-5s.mp4"
)

// UploadConfig is resolved once at startup and read-only afterwards.
type UploadConfig struct {
	Bucket  string
	Region  string
	Enabled bool // real upload vs. simulation
}

// UploadService validates and stores files for catalog rows. Calls are
// independent and safe to run concurrently; the only shared state is the
// read-only configuration.
type UploadService struct {
	client objstore.Client // nil in simulation mode
	cfg    UploadConfig
}

func NewUploadService(client objstore.Client, cfg UploadConfig) *UploadService {
	return &UploadService{client: client, cfg: cfg}
}

func (s *UploadService) simulated() bool {
	return !s.cfg.Enabled || s.client == nil
}

// Upload validates localPath against the category limit, computes the
// storage key, and either uploads the bytes or (in simulation mode)
// returns the category's placeholder URL without any network I/O.
func (s *UploadService) Upload(ctx context.Context, localPath, userID, catalogID string, ft domain.FileType) (string, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, localPath)
	}

	if info.Size() > ft.MaxBytes() {
		return "", &domain.SizeLimitError{Type: ft, Actual: info.Size(), MaxBytes: ft.MaxBytes()}
	}

	key := storageKey(userID, catalogID, ft, path.Base(localPath))

	if s.simulated() {
		log.Printf("[UPLOAD] Simulated upload of %s as %s", localPath, key)
		return placeholderFor(ft), nil
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}

	contentType := contentTypeForName(localPath)
	if err := s.client.PutObject(ctx, s.cfg.Bucket, key, data, contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("[UPLOAD] Stored %s (%s, %s)", key, contentType, domain.FormatBytes(info.Size()))
	return s.directURL(key), nil
}

// Delete removes an uploaded object. In simulation mode it is a no-op.
// Real remote deletion is not wired up yet; callers get an explicit
// error instead of a silent success.
func (s *UploadService) Delete(key string) error {
	if s.simulated() {
		log.Printf("[UPLOAD] Simulated delete of %s", key)
		return nil
	}
	return fmt.Errorf("remote delete not implemented for %q", key)
}

// directURL renders the public-style URL for a stored key.
func (s *UploadService) directURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// ResolveAccessURL normalizes key and returns a URL to read it from. A
// full URL for this bucket is reduced back to its key first; keys without
// a recognized prefix get "uploads/" prepended. In simulation mode the
// result is a placeholder picked by extension.
//
// TODO: generate real presigned URLs honoring expiry once request
// signing is wired; until then real mode returns the unsigned direct URL
// and expiry is ignored.
func (s *UploadService) ResolveAccessURL(key string, expiry time.Duration) string {
	_ = expiry

	key = strings.TrimPrefix(key, "/")
	key = strings.TrimPrefix(key, s.directURL(""))

	if !hasKnownPrefix(key) {
		key = "uploads/" + key
	}

	if s.simulated() {
		switch {
		case strings.HasSuffix(strings.ToLower(key), ".pdf"):
			return PlaceholderPDFURL
		case imageExts[strings.TrimPrefix(strings.ToLower(path.Ext(key)), ".")]:
			return PlaceholderImageURL
		}
	}

	return s.directURL(key)
}

func hasKnownPrefix(key string) bool {
	for _, p := range []string{"uploads/", "images/", "documents/", "public/"} {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func placeholderFor(ft domain.FileType) string {
	switch ft {
	case domain.FileTypeImage:
		return PlaceholderImageURL
	case domain.FileTypeMultimedia:
		return PlaceholderVideoURL
	default:
		return PlaceholderPDFURL
	}
}

// storageKey builds the deterministic object key:
// uploads/{user}/{catalog}/{folder}/{unixSeconds}_{8hexRandom}_{sanitizedName}
func storageKey(userID, catalogID string, ft domain.FileType, fileName string) string {
	return fmt.Sprintf("uploads/%s/%s/%s/%d_%s_%s",
		userID, catalogID, ft.Folder(), time.Now().Unix(), randomHex(4), SanitizeFileName(fileName))
}

func randomHex(nBytes int) string {
	buf := make([]byte, nBytes)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

var disallowedNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeFileName lowercases the base name, turns spaces into
// underscores and strips everything outside [a-zA-Z0-9_-]. The extension
// is preserved verbatim, including its case.
func SanitizeFileName(name string) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, " ", "_")
	base = disallowedNameChars.ReplaceAllString(base, "")
	return base + ext
}

// ── content-type and classification tables ─────────────────

var imageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"webp": true, "heic": true, "svg": true, "bmp": true,
}

var documentExts = map[string]bool{
	"doc": true, "docx": true, "xls": true, "xlsx": true,
	"ppt": true, "pptx": true, "txt": true, "csv": true, "rtf": true,
}

var multimediaExts = map[string]bool{
	"mp4": true, "mov": true, "avi": true, "mkv": true, "webm": true,
	"mp3": true, "wav": true, "aac": true, "m4a": true, "ogg": true,
}

var extContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"heic": "image/heic",
	"svg":  "image/svg+xml",
	"bmp":  "image/bmp",
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"txt":  "text/plain",
	"csv":  "text/csv",
	"rtf":  "application/rtf",
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"aac":  "audio/aac",
	"m4a":  "audio/mp4",
	"ogg":  "audio/ogg",
}

// contentTypeForName maps a file name's extension to a MIME type,
// falling back to application/octet-stream.
func contentTypeForName(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if ct, ok := extContentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Classify infers a file type from a URL or storage key: extension
// tables first, then substring heuristics, defaulting to document.
func Classify(url string) domain.FileType {
	lower := strings.ToLower(url)
	ext := strings.TrimPrefix(path.Ext(lower), ".")
	// strip query-ish trailers from the extension
	if i := strings.IndexAny(ext, "?#"); i != -1 {
		ext = ext[:i]
	}

	switch {
	case imageExts[ext]:
		return domain.FileTypeImage
	case ext == "pdf":
		return domain.FileTypePDF
	case documentExts[ext]:
		return domain.FileTypeDocument
	case multimediaExts[ext]:
		return domain.FileTypeMultimedia
	}

	switch {
	case strings.Contains(lower, "image"), strings.Contains(lower, "foto"):
		return domain.FileTypeImage
	case strings.Contains(lower, "video"), strings.Contains(lower, "audio"),
		strings.Contains(lower, "multimedia"):
		return domain.FileTypeMultimedia
	case strings.Contains(lower, "pdf"):
		return domain.FileTypePDF
	}
	return domain.FileTypeDocument
}
