package game

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/stickwalk/internal/obj"
	"github.com/decker502/stickwalk/pkg/embedded"
	"github.com/decker502/stickwalk/pkg/locomotion"
)

// ResourceManager is responsible for centralized management of game resources.
// It loads and caches font faces and OBJ meshes, reading files through
// pkg/embedded so that both embedded and on-disk assets are supported.
//
// Thread Safety Note:
// Font faces are only loaded from the game loop and use a plain map.
// Meshes are loaded from background goroutines (see MeshLoader), so the mesh
// cache is guarded by a mutex.
type ResourceManager struct {
	fontFaceCache map[string]*text.GoTextFace
	defaultSource *text.GoTextFaceSource

	meshMu    sync.Mutex
	meshCache map[string]*obj.Mesh
}

// NewResourceManager creates and initializes a new ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		fontFaceCache: make(map[string]*text.GoTextFace),
		meshCache:     make(map[string]*obj.Mesh),
	}
}

// LoadFont loads a TrueType/OpenType font from path and returns a face of the given size.
// Faces are cached by path and size.
//
// Parameters:
//   - path: The file path of the font resource (e.g., "assets/fonts/hud.ttf").
//   - size: The font size in pixels.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	fontData, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// DefaultFont returns a face of the bundled Go Regular font.
// The font source is parsed once; faces are cached by size.
func (rm *ResourceManager) DefaultFont(size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("goregular:%.1f", size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}
	if rm.defaultSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create default font source: %w", err)
		}
		rm.defaultSource = source
	}
	face := &text.GoTextFace{Source: rm.defaultSource, Size: size}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// LoadMesh decodes the Wavefront OBJ file at path. Decoded meshes are cached
// and shared; callers must treat them as read-only.
func (rm *ResourceManager) LoadMesh(meshPath string) (*obj.Mesh, error) {
	rm.meshMu.Lock()
	if mesh, ok := rm.meshCache[meshPath]; ok {
		rm.meshMu.Unlock()
		return mesh, nil
	}
	rm.meshMu.Unlock()

	f, err := embedded.Open(meshPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh %s: %w", meshPath, err)
	}
	defer f.Close()

	dec := obj.NewDecoder()
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("failed to decode mesh %s: %w", meshPath, err)
	}
	mesh, err := dec.Mesh()
	if err != nil {
		return nil, fmt.Errorf("invalid mesh %s: %w", meshPath, err)
	}
	if mesh.Name == "" {
		mesh.Name = strings.TrimSuffix(path.Base(meshPath), path.Ext(meshPath))
	}
	for _, w := range dec.Warnings {
		log.Debug().Str("mesh", meshPath).Msg("[ResourceManager] " + w)
	}

	rm.meshMu.Lock()
	defer rm.meshMu.Unlock()
	if cached, ok := rm.meshCache[meshPath]; ok {
		return cached, nil
	}
	rm.meshCache[meshPath] = mesh
	return mesh, nil
}

// MeshLoader returns a loader suitable for MeshSurface.LoadAsync.
// The context is checked before the file is read and again after decoding.
func (rm *ResourceManager) MeshLoader(meshPath string) locomotion.MeshLoader {
	return func(ctx context.Context) (*obj.Mesh, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mesh, err := rm.LoadMesh(meshPath)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return mesh, nil
	}
}
