package storage

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const keyPrefix = "product-images"

// publicObjectPath is the fixed public retrieval path of the object store.
const publicObjectPath = "/storage/v1/object/public/"

var whitespace = regexp.MustCompile(`\s+`)

// ObjectKey derives a collision-resistant storage key for an uploaded file
// from the upload time and the sanitized original filename.
func ObjectKey(filename string, now time.Time) string {
	name := whitespace.ReplaceAllString(filename, "_")
	return fmt.Sprintf("%s/%d_%s", keyPrefix, now.UnixMilli(), name)
}

// PublicURL derives the public retrieval URL for a stored key.
func PublicURL(baseURL, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + publicObjectPath + key
}
