package exif

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"
	"time"
)

func TestParseEXIFTime(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{"standard", "2024:03:05 14:30:00", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), true},
		{"date only", "2023:07:15", time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC), true},
		{"nul padded", "2024:03:05 14:30:00\x00", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), true},
		{"subsecond suffix", "2024:03:05 14:30:00.123", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"zeroed tag", "0000:00:00 00:00:00", time.Time{}, false},
		{"garbage", "no date here", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseEXIFTime(tc.value)
			if ok != tc.ok {
				t.Fatalf("parseEXIFTime(%q) ok = %v, want %v", tc.value, ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Errorf("parseEXIFTime(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestParseEXIFTimeZoneOffset(t *testing.T) {
	got, ok := parseEXIFTime("2024:03:05 14:30:00+02:00")
	if !ok {
		t.Fatal("offset timestamp rejected")
	}
	want := time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Errorf("parsed = %v, want %v", got.UTC(), want)
	}
}

func TestCleanString(t *testing.T) {
	cases := []struct{ in, want string }{
		{"NIKON CORPORATION\x00", "NIKON CORPORATION"},
		{"  Canon ", "Canon"},
		{"\x00\x00", ""},
		{"D750", "D750"},
	}
	for _, tc := range cases {
		if got := cleanString(tc.in); got != tc.want {
			t.Errorf("cleanString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadRejectsPlainJPEG(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if _, err := Read(&buf); err == nil {
		t.Fatal("Read succeeded on a JPEG without an EXIF segment")
	}
}

func TestInfoHasDateTaken(t *testing.T) {
	if (Info{}).HasDateTaken() {
		t.Error("zero Info reports a capture date")
	}
	info := Info{DateTaken: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if !info.HasDateTaken() {
		t.Error("populated Info reports no capture date")
	}
}
