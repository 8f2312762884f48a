package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store writes uploaded product images to a local directory served
// under /media. The public URL host is configurable so a CDN or reverse
// proxy can front the files.
type Store struct {
	dir     string
	urlHost string
}

func NewStore(dir, urlHost string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir, urlHost: strings.TrimRight(urlHost, "/")}, nil
}

// Dir returns the directory files are written to, for static serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a generated name and returns its
// public URL path.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return s.urlHost + "/media/" + name, nil
}
