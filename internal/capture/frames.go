package capture

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
)

const (
	framePrefix    = "frame_"
	frameExt       = ".jpg"
	DefaultQuality = 90
	TmpDirName     = "tmp"
)

// FrameStore keeps numbered JPEG snapshots in a single directory.
type FrameStore struct {
	dir     string
	quality int
}

func NewFrameStore(dir string, quality int) *FrameStore {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &FrameStore{dir: dir, quality: quality}
}

// ForOutput returns the store for frames of the video at output: a tmp
// directory next to it.
func ForOutput(output string, quality int) *FrameStore {
	return NewFrameStore(filepath.Join(filepath.Dir(output), TmpDirName), quality)
}

func (s *FrameStore) Dir() string { return s.dir }

// Pattern is the glob matching every frame file.
func (s *FrameStore) Pattern() string {
	return filepath.Join(s.dir, framePrefix+"*"+frameExt)
}

// Input is the printf-style sequence pattern understood by ffmpeg.
func (s *FrameStore) Input() string {
	return filepath.Join(s.dir, framePrefix+"%04d"+frameExt)
}

func (s *FrameStore) Path(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%04d%s", framePrefix, n, frameExt))
}

// List returns the frame files currently on disk, sorted by name.
func (s *FrameStore) List() ([]string, error) {
	files, err := filepath.Glob(s.Pattern())
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Clean removes every frame file and reports how many were deleted.
func (s *FrameStore) Clean() (int, error) {
	files, err := s.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("capture: remove %s: %w", f, err)
		}
		removed++
	}
	return removed, nil
}

// Write stores img as frame n.
func (s *FrameStore) Write(n int, img image.Image) error {
	if n < 1 {
		return fmt.Errorf("capture: invalid frame number %d", n)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	path := s.Path(n)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return fmt.Errorf("capture: encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
