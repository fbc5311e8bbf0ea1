// Package media kart görsellerini (profil fotoğrafı, logo, kapak) dosya sisteminden okur.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// MaxFileSize okunacak tek dosyanın üst sınırı.
const MaxFileSize = 10 << 20

var (
	ErrInvalidName = errors.New("geçersiz medya adı")
	ErrNotFound    = errors.New("medya bulunamadı")
	ErrTooLarge    = errors.New("medya dosyası çok büyük")
)

// FileStore kök dizin altındaki dosyalara salt okunur erişim.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Read name'i kök dizine göre çözer. Kök dışına çıkan, mutlak veya boş adlar reddedilir.
func (s *FileStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q bir dizin", ErrInvalidName, name)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s (%d bayt)", ErrTooLarge, name, info.Size())
	}
	return io.ReadAll(io.LimitReader(f, MaxFileSize+1))
}
