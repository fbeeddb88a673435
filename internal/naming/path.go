package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "")

// SanitizeName makes a metadata value safe to use inside a single path
// element, so "AC/DC" cannot introduce a directory.
func SanitizeName(s string) string {
	return nameReplacer.Replace(s)
}

// UniquePath returns path if nothing exists there, otherwise the first free
// "name (n).ext" variant with n counting from 1.
func UniquePath(path string) string {
	if !exists(path) {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
