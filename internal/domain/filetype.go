package domain

// FileType classifies a row file for upload and display purposes.
type FileType string

const (
	FileTypeImage      FileType = "image"
	FileTypeDocument   FileType = "document"
	FileTypeMultimedia FileType = "multimedia"

	// FileTypePDF is kept as a distinct tag for content-type and icon
	// display, but shares the document bucket for every size-limit and
	// storage-folder decision.
	FileTypePDF FileType = "pdf"
)

// Folder returns the storage folder segment for the file type.
func (t FileType) Folder() string {
	switch t {
	case FileTypeImage:
		return "images"
	case FileTypeMultimedia:
		return "multimedia"
	default:
		// document and pdf share a folder
		return "documents"
	}
}

// MaxBytes returns the per-category upload size limit.
func (t FileType) MaxBytes() int64 {
	switch t {
	case FileTypeImage:
		return 20 << 20
	case FileTypeMultimedia:
		return 300 << 20
	default:
		return 50 << 20
	}
}
