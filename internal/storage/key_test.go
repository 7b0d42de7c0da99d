package storage

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKey_Shape(t *testing.T) {
	key := DeriveKey("user-1", "report.pdf")

	assert.True(t, strings.HasPrefix(key, "files/user-1/"), "key = %s", key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), "key = %s", key)

	now := time.Now().UTC()
	datePath := fmt.Sprintf("%04d/%02d/%02d", now.Year(), int(now.Month()), now.Day())
	assert.Contains(t, key, datePath)

	// files/{user}/{yyyy}/{mm}/{dd}/{token}_{name}
	re := regexp.MustCompile(`^files/user-1/\d{4}/\d{2}/\d{2}/[A-Za-z0-9_-]{12}_report\.pdf$`)
	assert.Regexp(t, re, key)
}

func TestDeriveKey_Unique(t *testing.T) {
	a := DeriveKey("user-1", "report.pdf")
	b := DeriveKey("user-1", "report.pdf")
	assert.NotEqual(t, a, b, "same user and filename on the same day must produce different keys")
}

func TestDeriveKey_Sanitization(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantTail string
	}{
		{"unsafe characters replaced", `we"ird:na*me?.txt`, "_we_ird_na_me_.txt"},
		{"whitespace runs collapse", "my   annual\treport.pdf", "_my_annual_report.pdf"},
		{"path separators replaced", `..\..\etc\passwd.txt`, "_.._.._etc_passwd.txt"},
		{"extension untouched", "notes.TAR.GZ", ".GZ"},
		{"no extension", "README", "_README"},
		{"dotfile keeps full name as base", ".gitignore", "_.gitignore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := DeriveKey("u", tt.filename)
			assert.True(t, strings.HasSuffix(key, tt.wantTail), "key = %s, want suffix %s", key, tt.wantTail)
		})
	}
}

func TestDeriveKey_TruncatesLongBaseName(t *testing.T) {
	long := strings.Repeat("a", 500) + ".bin"
	key := DeriveKey("u", long)

	last := key[strings.LastIndex(key, "/")+1:]
	// token(12) + "_" + base(200) + ".bin"
	assert.Len(t, last, 12+1+200+4)
	assert.True(t, strings.HasSuffix(key, ".bin"))
}

func TestNewKeyToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := newKeyToken()
		assert.Len(t, tok, keyTokenLength)
		assert.Regexp(t, `^[A-Za-z0-9_-]+$`, tok)
		assert.False(t, seen[tok], "token collision: %s", tok)
		seen[tok] = true
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		in, base, ext string
	}{
		{"a.txt", "a", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
		{".bashrc", ".bashrc", ""},
		{"trailing.", "trailing", "."},
	}
	for _, tt := range tests {
		base, ext := splitExt(tt.in)
		assert.Equal(t, tt.base, base, "base of %q", tt.in)
		assert.Equal(t, tt.ext, ext, "ext of %q", tt.in)
	}
}
