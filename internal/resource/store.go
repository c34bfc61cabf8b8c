// Package resource is the keyed asset store. Assets are resolved against a
// file system rooted at the resource directory and typed by file extension.
package resource

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ID is the hash of a normalised resource path.
type ID uint64

// Kind is the resource type derived from the file extension.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindImage
	KindData
	KindShader
	KindMesh
	KindMusic
	KindSFX
)

var kindNames = [...]string{"unknown", "image", "data", "shader", "mesh", "music", "sfx"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

var kindByExt = map[string]Kind{
	"png":  KindImage,
	"json": KindData,
	"dat":  KindData,
	"lua":  KindData,
	"xml":  KindData,
	"yaml": KindData,
	"yml":  KindData,
	"vs":   KindShader,
	"fs":   KindShader,
	"obj":  KindMesh,
	"dae":  KindMesh,
	"ogg":  KindMusic,
	"wav":  KindSFX,
}

// KindOf returns the kind for p's extension.
func KindOf(p string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	return kindByExt[ext]
}

// Normalize converts p to the store's canonical form: forward slashes, cleaned,
// relative, with a leading "res/" removed.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)[1:]
	return strings.TrimPrefix(p, "res/")
}

// IDOf hashes the normalised form of p.
func IDOf(p string) ID {
	return hashNormalized(Normalize(p))
}

func hashNormalized(norm string) ID {
	h := fnv.New64a()
	h.Write([]byte(norm))
	return ID(h.Sum64())
}

// Resource is one loaded asset. Image is set for KindImage; Data always holds
// the raw file contents.
type Resource struct {
	ID    ID
	Path  string
	Kind  Kind
	Data  []byte
	Image image.Image
}

// Store caches loaded resources by ID. It is not safe for concurrent use.
type Store struct {
	fsys fs.FS
	log  *zap.Logger
	byID map[ID]*Resource
}

func NewStore(fsys fs.FS, log *zap.Logger) *Store {
	return &Store{
		fsys: fsys,
		log:  log,
		byID: make(map[ID]*Resource, 64),
	}
}

// Load reads and decodes p, or returns the cached ID if already loaded.
func (s *Store) Load(p string) (ID, error) {
	norm := Normalize(p)
	id := hashNormalized(norm)
	if _, ok := s.byID[id]; ok {
		return id, nil
	}
	kind := KindOf(norm)
	if kind == KindUnknown {
		return 0, fmt.Errorf("load %s: unsupported extension", p)
	}
	raw, err := fs.ReadFile(s.fsys, norm)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", p, err)
	}
	res := &Resource{ID: id, Path: norm, Kind: kind, Data: raw}
	if kind == KindImage {
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return 0, fmt.Errorf("decode %s: %w", p, err)
		}
		res.Image = img
	}
	s.byID[id] = res
	s.log.Debug("resource loaded",
		zap.String("path", norm),
		zap.Stringer("kind", kind),
		zap.Int("bytes", len(raw)),
	)
	return id, nil
}

// LoadAll loads every path, collecting all failures.
func (s *Store) LoadAll(paths ...string) ([]ID, error) {
	ids := make([]ID, 0, len(paths))
	var errs error
	for _, p := range paths {
		id, err := s.Load(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, errs
}

func (s *Store) Get(id ID) (*Resource, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Has reports whether p is loaded.
func (s *Store) Has(p string) bool {
	_, ok := s.byID[IDOf(p)]
	return ok
}

func (s *Store) Unload(id ID) {
	if r, ok := s.byID[id]; ok {
		delete(s.byID, id)
		s.log.Debug("resource unloaded", zap.String("path", r.Path))
	}
}

func (s *Store) Len() int { return len(s.byID) }

// Image returns the decoded image of a loaded png.
func (s *Store) Image(id ID) (image.Image, error) {
	r, err := s.kind(id, KindImage)
	if err != nil {
		return nil, err
	}
	return r.Image, nil
}

// Text returns the contents of a loaded data or shader resource.
func (s *Store) Text(id ID) (string, error) {
	r, ok := s.byID[id]
	if !ok {
		return "", fmt.Errorf("resource %016x not loaded", uint64(id))
	}
	if r.Kind != KindData && r.Kind != KindShader {
		return "", fmt.Errorf("resource %s is %s, not text", r.Path, r.Kind)
	}
	return string(r.Data), nil
}

// DecodeJSON unmarshals a loaded json data blob into v.
func (s *Store) DecodeJSON(id ID, v any) error {
	r, err := s.kind(id, KindData)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", r.Path, err)
	}
	return nil
}

func (s *Store) kind(id ID, want Kind) (*Resource, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("resource %016x not loaded", uint64(id))
	}
	if r.Kind != want {
		return nil, fmt.Errorf("resource %s is %s, not %s", r.Path, r.Kind, want)
	}
	return r, nil
}

// Close unloads everything.
func (s *Store) Close() {
	for id := range s.byID {
		delete(s.byID, id)
	}
}
