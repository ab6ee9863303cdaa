package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageKey builds an object key of the form <prefix>/<uuid>[.<ext>],
// keeping the extension of the uploaded file name when it has one.
func StorageKey(prefix, fileName string) string {
	key := prefix + "/" + uuid.NewString()
	if ext := filepath.Ext(fileName); ext != "" && ext != "." {
		key += ext
	}
	return key
}

// FormatBytes renders a byte count for display, e.g. 1536 -> "1.5 KB".
func FormatBytes(n int64) string {
	if n <= 0 {
		return ""
	}
	units := []string{"B", "KB", "MB", "GB"}
	value := float64(n)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", n, units[i])
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}

// NilIfBlank trims s and returns nil when nothing is left.
func NilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
