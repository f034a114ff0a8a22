// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zeebo/blake3"
)

func writeImage(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image")
	if err := os.WriteFile(path, content, 0755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestHashFile(t *testing.T) {
	content := []byte("hello, bundle")
	got, err := HashFile(writeImage(t, content))
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	want := Digest(blake3.Sum256(content))
	if got != want {
		t.Errorf("HashFile = %s, want %s", got, want)
	}
}

func TestHashFileLarge(t *testing.T) {
	content := make([]byte, 256*1024)
	for i := range content {
		content[i] = byte(i % 251)
	}
	got, err := HashFile(writeImage(t, content))
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := Digest(blake3.Sum256(content)); got != want {
		t.Errorf("HashFile(large) = %s, want %s", got, want)
	}
}

func TestHashFileNonexistent(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("HashFile should fail for nonexistent file")
	}
}

func TestCopy(t *testing.T) {
	content := []byte("copied and hashed in one pass")
	var destination bytes.Buffer

	digest, written, err := Copy(&destination, bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if written != int64(len(content)) {
		t.Errorf("written = %d, want %d", written, len(content))
	}
	if !bytes.Equal(destination.Bytes(), content) {
		t.Errorf("destination = %q, want %q", destination.Bytes(), content)
	}
	if want := Digest(blake3.Sum256(content)); digest != want {
		t.Errorf("digest = %s, want %s", digest, want)
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	original := Digest(blake3.Sum256([]byte("round-trip")))
	formatted := original.String()
	if len(formatted) != 64 {
		t.Fatalf("String length = %d, want 64", len(formatted))
	}

	parsed, err := ParseDigest(formatted)
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if parsed != original {
		t.Errorf("ParseDigest round-trip failed: %s != %s", parsed, original)
	}
}

func TestParseDigestInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"too short", "abcd"},
		{"too long", "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789aa"},
		{"empty", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseDigest(test.input); err == nil {
				t.Errorf("ParseDigest(%q) should fail", test.input)
			}
		})
	}
}

func TestTake(t *testing.T) {
	content := []byte("image contents")
	path := writeImage(t, content)

	digestPrint, err := Take(path, ModeDigest)
	if err != nil {
		t.Fatalf("Take(digest): %v", err)
	}
	if digestPrint.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", digestPrint.Size, len(content))
	}
	if digestPrint.Digest.IsZero() {
		t.Error("digest mode produced a zero digest")
	}

	statPrint, err := Take(path, ModeStat)
	if err != nil {
		t.Fatalf("Take(stat): %v", err)
	}
	if !statPrint.Digest.IsZero() {
		t.Error("stat mode computed a digest")
	}
	if statPrint.ModTime != digestPrint.ModTime {
		t.Errorf("ModTime differs between modes: %d vs %d", statPrint.ModTime, digestPrint.ModTime)
	}
}

func TestTakeRejectsDirectory(t *testing.T) {
	if _, err := Take(t.TempDir(), ModeStat); err == nil {
		t.Fatal("Take of a directory should fail")
	}
}

func TestMatches(t *testing.T) {
	path := writeImage(t, []byte("version one"))
	original, err := Take(path, ModeDigest)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}

	// Touching the file changes the stat fingerprint but not the digest.
	later := time.Unix(0, original.ModTime).Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	touched, err := Take(path, ModeDigest)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if !original.Matches(touched, ModeDigest) {
		t.Error("digest mode treats a touched file as changed")
	}
	if original.Matches(touched, ModeStat) {
		t.Error("stat mode ignores a modification time change")
	}

	// Same size, different contents.
	if err := os.WriteFile(path, []byte("version two"), 0755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	rewritten, err := Take(path, ModeDigest)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if original.Matches(rewritten, ModeDigest) {
		t.Error("digest mode treats different contents as equal")
	}

	// A stat-only record never satisfies a digest comparison.
	statOnly := Fingerprint{Size: original.Size, ModTime: original.ModTime}
	if statOnly.Matches(original, ModeDigest) {
		t.Error("digest mode matched a fingerprint without a digest")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"", ModeDigest},
		{"digest", ModeDigest},
		{"stat", ModeStat},
	}
	for _, test := range tests {
		got, err := ParseMode(test.input)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", test.input, err)
		}
		if got != test.want {
			t.Errorf("ParseMode(%q) = %v, want %v", test.input, got, test.want)
		}
		if test.input != "" && got.String() != test.input {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), test.input)
		}
	}
	if _, err := ParseMode("sha256"); err == nil {
		t.Error("ParseMode(sha256) should fail")
	}
}
