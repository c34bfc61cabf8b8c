package resource

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{0, 0, 0xFF, 0xFF})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testStore(t *testing.T) *Store {
	fsys := fstest.MapFS{
		"maps/navmap.png":  {Data: pngBytes(t)},
		"data/units.json":  {Data: []byte(`{"speed": 2.5, "name": "scout"}`)},
		"scripts/boot.lua": {Data: []byte(`x = 1`)},
		"shaders/basic.vs": {Data: []byte(`void main() {}`)},
		"sfx/horn.wav":     {Data: []byte("RIFF")},
		"maps/broken.png":  {Data: []byte("not a png")},
		"notes/readme.txt": {Data: []byte("?")},
	}
	return NewStore(fsys, zap.NewNop())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "maps/navmap.png", Normalize("res/maps/navmap.png"))
	assert.Equal(t, "maps/navmap.png", Normalize("./res/maps/../maps/navmap.png"))
	assert.Equal(t, "maps/navmap.png", Normalize(`res\maps\navmap.png`))
	assert.Equal(t, IDOf("res/maps/navmap.png"), IDOf("maps/navmap.png"))
	assert.NotEqual(t, IDOf("maps/a.png"), IDOf("maps/b.png"))
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"a.png": KindImage, "a.json": KindData, "a.dat": KindData, "a.lua": KindData,
		"a.xml": KindData, "a.vs": KindShader, "a.fs": KindShader, "a.obj": KindMesh,
		"a.dae": KindMesh, "a.ogg": KindMusic, "a.WAV": KindSFX, "a.txt": KindUnknown,
	}
	for p, want := range cases {
		assert.Equal(t, want, KindOf(p), p)
	}
}

func TestLoadGetHasUnload(t *testing.T) {
	s := testStore(t)
	id, err := s.Load("res/maps/navmap.png")
	require.NoError(t, err)
	assert.True(t, s.Has("maps/navmap.png"))

	again, err := s.Load("maps/navmap.png")
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, 1, s.Len())

	img, err := s.Image(id)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	r, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, KindImage, r.Kind)

	s.Unload(id)
	assert.False(t, s.Has("maps/navmap.png"))
	_, ok = s.Get(id)
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	s := testStore(t)
	_, err := s.Load("maps/missing.png")
	assert.Error(t, err)
	_, err = s.Load("maps/broken.png")
	assert.Error(t, err)
	_, err = s.Load("notes/readme.txt")
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLoadAllCollectsErrors(t *testing.T) {
	s := testStore(t)
	ids, err := s.LoadAll("scripts/boot.lua", "maps/missing.png", "notes/readme.txt")
	assert.Len(t, ids, 1)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestTypedAccessors(t *testing.T) {
	s := testStore(t)
	jsonID, err := s.Load("data/units.json")
	require.NoError(t, err)
	var unit struct {
		Speed float64 `json:"speed"`
		Name  string  `json:"name"`
	}
	require.NoError(t, s.DecodeJSON(jsonID, &unit))
	assert.Equal(t, 2.5, unit.Speed)
	assert.Equal(t, "scout", unit.Name)

	vsID, err := s.Load("shaders/basic.vs")
	require.NoError(t, err)
	src, err := s.Text(vsID)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", src)

	wavID, err := s.Load("sfx/horn.wav")
	require.NoError(t, err)
	_, err = s.Text(wavID)
	assert.Error(t, err)
	_, err = s.Image(wavID)
	assert.Error(t, err)

	s.Close()
	assert.Equal(t, 0, s.Len())
}

func TestLoadKeysByNormalizedPath(t *testing.T) {
	s := NewStore(fstest.MapFS{
		"res/x.lua": {Data: []byte(`y = 2`)},
	}, zap.NewNop())

	id, err := s.Load("res/res/x.lua")
	require.NoError(t, err)
	assert.Equal(t, IDOf("res/res/x.lua"), id)
	assert.True(t, s.Has("res/res/x.lua"))

	r, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "res/x.lua", r.Path)
}
