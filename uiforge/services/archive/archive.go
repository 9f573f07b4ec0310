// Package archive packages generated code into a downloadable zip.
package archive

import (
	"archive/zip"
	"bytes"
	"time"
)

const (
	FileName       = "component.zip"
	MarkupFileName = "Component.jsx"
	StyleFileName  = "styles.css"
	ContentType    = "application/zip"
)

// Build returns a zip holding the markup and stylesheet, stamped with modified.
func Build(markup, style string, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct {
		name, body string
	}{
		{MarkupFileName, markup},
		{StyleFileName, style},
	}
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
