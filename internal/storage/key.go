package storage

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Object keys follow files/{userId}/{YYYY}/{MM}/{DD}/{token}_{sanitizedName}.
// The date is the intent-creation date, the token makes keys unique even for
// identical filenames uploaded by the same user on the same day.

const keyTokenLength = 12

// URL-safe alphabet, 64 characters so a random byte maps uniformly via masking.
const keyTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const maxBaseNameLength = 200

var (
	unsafeChars   = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// DeriveKey produces the namespaced object-store key for a new upload.
// It never fails: every string input yields a usable key.
func DeriveKey(userID, originalName string) string {
	now := time.Now().UTC()
	base, ext := splitExt(originalName)
	return fmt.Sprintf("files/%s/%04d/%02d/%02d/%s_%s%s",
		userID, now.Year(), int(now.Month()), now.Day(),
		newKeyToken(), sanitizeBaseName(base), ext)
}

// splitExt splits a filename at its last dot. A leading dot is not treated as
// an extension separator, so dotfiles keep their full name as the base.
func splitExt(name string) (base, ext string) {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i], name[i:]
	}
	return name, ""
}

// sanitizeBaseName makes the base filesystem- and URL-safe. The extension is
// reattached by the caller unsanitized.
func sanitizeBaseName(base string) string {
	s := unsafeChars.ReplaceAllString(base, "_")
	s = whitespaceRun.ReplaceAllString(s, "_")
	if r := []rune(s); len(r) > maxBaseNameLength {
		s = string(r[:maxBaseNameLength])
	}
	return s
}

// newKeyToken returns keyTokenLength characters of crypto/rand randomness from
// the URL-safe alphabet.
func newKeyToken() string {
	buf := make([]byte, keyTokenLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	b := make([]byte, keyTokenLength)
	for i, v := range buf {
		b[i] = keyTokenAlphabet[v&63]
	}
	return string(b)
}
