package services

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"filtergram/internal/logger"
)

// PhotoLibrary stores processed photos in an album directory. Writes run
// in the background and report through callbacks.
type PhotoLibrary struct {
	dir         string
	format      string
	jpegQuality int
	images      *ImageService
	logger      logger.Logger

	seq     atomic.Uint64
	pending sync.WaitGroup
	now     func() time.Time
}

func NewPhotoLibrary(dir, format string, jpegQuality int, images *ImageService, log logger.Logger) *PhotoLibrary {
	return &PhotoLibrary{
		dir:         dir,
		format:      format,
		jpegQuality: jpegQuality,
		images:      images,
		logger:      log,
		now:         time.Now,
	}
}

func (l *PhotoLibrary) Dir() string {
	return l.dir
}

// WriteToPhotoAlbum returns immediately. Exactly one of onSuccess and
// onError is called from a background goroutine once the write finishes.
// Either callback may be nil.
func (l *PhotoLibrary) WriteToPhotoAlbum(img image.Image, onSuccess func(path string), onError func(err error)) {
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()

		path, err := l.write(img)
		if err != nil {
			l.logger.Error("PhotoLibrary", err, map[string]interface{}{"dir": l.dir})
			if onError != nil {
				onError(err)
			}
			return
		}

		l.logger.Info("PhotoLibrary", "image saved", map[string]interface{}{"path": path})
		if onSuccess != nil {
			onSuccess(path)
		}
	}()
}

func (l *PhotoLibrary) write(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nothing to save")
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create album directory: %w", err)
	}

	ext := Extension(l.format)
	if ext == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, l.format)
	}

	file, path, err := l.create(ext)
	if err != nil {
		return "", err
	}

	if err := l.images.Encode(file, img, l.format, l.jpegQuality); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// create opens a new file named FilterGram_<timestamp>_<seq><ext>, never
// overwriting an existing one.
func (l *PhotoLibrary) create(ext string) (*os.File, string, error) {
	stamp := l.now().Format("20060102_150405")
	for {
		name := fmt.Sprintf("FilterGram_%s_%03d%s", stamp, l.seq.Add(1), ext)
		path := filepath.Join(l.dir, name)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
		}
	}
}

// Wait blocks until every pending write has reported.
func (l *PhotoLibrary) Wait() {
	l.pending.Wait()
}

func (l *PhotoLibrary) Shutdown() {
	l.Wait()
	l.logger.Info("PhotoLibrary", "pending writes flushed", nil)
}
