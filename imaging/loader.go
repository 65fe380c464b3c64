package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// ImageCache caches decoded images by file path.
//
// A training loop revisits the same sample files once per epoch; decoding
// them from disk every time dominates the cost of the transforms applied
// afterwards. The cache holds decoded image.Image values so that only the
// first epoch pays for decoding.
//
// ImageCache is safe for concurrent use by parallel data-loading workers.
// Cached images stay in memory until Evict or Clear is called; size the
// working set accordingly for large datasets.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache returns an empty cache ready for use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the decoded image at path, reading and decoding it on the
// first call and serving the cached copy afterwards. Supported formats are
// PNG, JPEG, and GIF. The cache key is the exact path string, so relative
// and absolute paths to the same file occupy separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadAll loads every path in order and returns the decoded images. The
// first failure aborts the load and no partial result is returned.
func (c *ImageCache) LoadAll(paths []string) ([]image.Image, error) {
	images := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		img, err := c.Load(path)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// Evict removes the entry for path, if present. The next Load for that path
// reads from disk again.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Len reports the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}
