package media

import (
	"errors"
	"io/fs"
	"testing"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	err := Wrap(ErrUnsupportedType, "classifier", "classify", "no handler for extension", fs.ErrNotExist)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("marker lost: %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("cause lost: %v", err)
	}
}

func TestWrapMessageComposition(t *testing.T) {
	err := Wrap(ErrValidation, "record", "set_manual", "rating out of range", nil)
	want := "validation error: record: set_manual: rating out of range"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := Wrap(nil, "record", "", "", nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("nil marker should default to ErrValidation, got %v", err)
	}
}
