package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageFile describes one stored upload. OriginalName and MimeType are only
// known at upload time; listings report what the filesystem knows.
type ImageFile struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalname,omitempty"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimetype,omitempty"`
	URL          string    `json:"url,omitempty"`
	Created      time.Time `json:"created"`
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// ImageStore streams uploads to a local directory and lists what it holds.
type ImageStore struct {
	dir     string
	baseURL string
}

func NewImageStore(dir, baseURL string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &ImageStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes r to a uniquely named file. The name keeps the original
// extension so static serving gets the content type right.
func (s *ImageStore) Save(originalName, mimeType string, r io.Reader) (ImageFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("images-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	f, err := os.Create(filepath.Join(s.dir, name))

	if err != nil {
		return ImageFile{}, err
	}

	written, err := io.Copy(f, r)

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return ImageFile{}, err
	}

	return ImageFile{
		Filename:     name,
		OriginalName: originalName,
		Size:         written,
		MimeType:     mimeType,
		URL:          s.baseURL + "/" + name,
		Created:      time.Now().UTC(),
	}, nil
}

// List enumerates stored files with a recognized image extension.
func (s *ImageStore) List() ([]ImageFile, error) {
	entries, err := os.ReadDir(s.dir)

	if err != nil {
		return nil, err
	}

	out := make([]ImageFile, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))

		if _, ok := imageExtensions[ext]; !ok {
			continue
		}

		info, err := entry.Info()

		if err != nil {
			return nil, err
		}

		out = append(out, ImageFile{
			Filename: entry.Name(),
			URL:      s.baseURL + "/" + entry.Name(),
			Size:     info.Size(),
			Created:  info.ModTime().UTC(),
		})
	}

	return out, nil
}
