package components

import (
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Textures resolves a texture name to an image.
type Textures interface {
	Texture(name string) (*ebiten.Image, error)
}

// TextureCache loads image files relative to a directory and keeps them for
// the lifetime of the cache.
type TextureCache struct {
	dir    string
	images map[string]*ebiten.Image
}

func NewTextureCache(dir string) *TextureCache {
	return &TextureCache{
		dir:    dir,
		images: make(map[string]*ebiten.Image),
	}
}

func (c *TextureCache) Texture(name string) (*ebiten.Image, error) {
	if img, ok := c.images[name]; ok {
		return img, nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, name)
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	c.images[name] = img
	return img, nil
}

// Put registers an already built image under name.
func (c *TextureCache) Put(name string, img *ebiten.Image) {
	c.images[name] = img
}
