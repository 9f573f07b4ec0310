package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"
)

func TestBuildContainsBothFiles(t *testing.T) {
	data, err := Build("<div>hi</div>", "div{color:red}", time.Now())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	want := map[string]string{
		MarkupFileName: "<div>hi</div>",
		StyleFileName:  "div{color:red}",
	}
	if len(zr.File) != len(want) {
		t.Fatalf("expected %d files, got %d", len(want), len(zr.File))
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(rc)
		rc.Close()
		if want[f.Name] != string(body) {
			t.Errorf("%s: expected %q, got %q", f.Name, want[f.Name], body)
		}
	}
}

func TestBuildEmptyCode(t *testing.T) {
	data, err := Build("", "", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected a valid empty-file archive")
	}
}
