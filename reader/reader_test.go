package reader

import (
	"errors"
	"testing"
)

func TestNewReaderGarbage(t *testing.T) {
	_, err := NewReader([]byte("this is not a pdf"))
	if err == nil {
		t.Fatal("NewReader() on garbage input should fail")
	}
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Errorf("error = %v, want ErrDocumentUnreadable", err)
	}
}

func TestNewReaderEmpty(t *testing.T) {
	_, err := NewReader(nil)
	if err == nil {
		t.Fatal("NewReader() on empty input should fail")
	}
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Errorf("error = %v, want ErrDocumentUnreadable", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("testdata/does-not-exist.pdf")
	if err == nil {
		t.Fatal("Open() on a missing file should fail")
	}
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Errorf("error = %v, want ErrDocumentUnreadable", err)
	}
}
