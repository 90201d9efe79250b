package export

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"jobdeck/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Image inlining — exported HTML must be self-contained
// ─────────────────────────────────────────────────────────────

// GuessMIME infers the image MIME type from the URI extension.
func GuessMIME(uri string) string {
	if strings.HasSuffix(strings.ToLower(uri), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

// localPath extracts a filesystem path from a node URI, or "" when the
// URI is remote or already a data URI.
func localPath(uri string) string {
	switch {
	case strings.HasPrefix(uri, "file://"):
		return strings.TrimPrefix(uri, "file://")
	case strings.HasPrefix(uri, "data:"),
		strings.HasPrefix(uri, "http://"),
		strings.HasPrefix(uri, "https://"):
		return ""
	default:
		// Bare paths are treated as local files.
		return uri
	}
}

// ToDataURI reads a local file and re-encodes it as a base64 data URI.
func ToDataURI(uri string) (string, error) {
	path := localPath(uri)
	if path == "" {
		return uri, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", path, err)
	}
	return "data:" + GuessMIME(uri) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// InlineNodeImages returns a deep copy of the document with every
// local-file image re-encoded as a data URI, so the exported document
// stays valid after the source files are deleted. A node whose file
// cannot be read keeps its original URI; inlining is best-effort.
func InlineNodeImages(doc domain.TemplateDoc) domain.TemplateDoc {
	out := doc.Clone()
	for i, n := range out.Nodes {
		if n.Type != domain.NodeImage {
			continue
		}
		if uri, err := ToDataURI(n.URI); err == nil {
			out.Nodes[i].URI = uri
		}
	}
	return out
}
