package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/grindfit/internal/domain"
)

var ErrNotDataURI = errors.New("not a base64 data URI")

// DecodeDataURI returns the payload and media type of a base64 data URI.
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	return data, mediaType, nil
}

// WriteIcons writes each cached icon to dir as <type>.svg and returns the
// written paths sorted by type name.
func WriteIcons(dir string, icons map[domain.TaskType]string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating icon directory: %w", err)
	}

	types := make([]domain.TaskType, 0, len(icons))
	for t := range icons {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var written []string
	for _, t := range types {
		data, mediaType, err := DecodeDataURI(icons[t])
		if err != nil {
			return written, fmt.Errorf("decoding %s icon: %w", t, err)
		}
		ext := ".svg"
		if mediaType != "image/svg+xml" {
			ext = ".bin"
		}
		path := filepath.Join(dir, strings.ToLower(string(t))+ext)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("writing %s icon: %w", t, err)
		}
		written = append(written, path)
	}
	return written, nil
}
