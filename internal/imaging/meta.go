package imaging

import (
	"bytes"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
)

// SourceMeta is the EXIF summary surfaced in the processing logs.
// Extraction is diagnostic only; a missing or unparseable EXIF block
// never stops the pipeline.
type SourceMeta struct {
	CameraMake  string
	CameraModel string
	Taken       time.Time
	HasTaken    bool
}

// ProbeMeta extracts an EXIF summary from raw image bytes. The second
// return value is false when the bytes carry no usable metadata, which
// is common (plain PNGs, GIFs, stripped JPEGs) and not an error.
func ProbeMeta(data []byte) (SourceMeta, bool) {
	exif, err := imagemeta.Decode(bytes.NewReader(data))
	if err != nil {
		return SourceMeta{}, false
	}

	meta := SourceMeta{
		CameraMake:  strings.TrimSpace(exif.Make),
		CameraModel: strings.TrimSpace(exif.Model),
	}

	// Prefer the capture time; fall back to the file's create date.
	if !exif.DateTimeOriginal().IsZero() {
		meta.Taken = exif.DateTimeOriginal()
		meta.HasTaken = true
	} else if !exif.CreateDate().IsZero() {
		meta.Taken = exif.CreateDate()
		meta.HasTaken = true
	}

	if meta.CameraMake == "" && meta.CameraModel == "" && !meta.HasTaken {
		return SourceMeta{}, false
	}
	return meta, true
}
