package data

import (
	"testing"
	"testing/fstest"

	"github.com/overworld/core/internal/component"
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/navmap"
	"github.com/overworld/core/internal/particle"
	"github.com/overworld/core/internal/resource"
	"github.com/overworld/core/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const harbour = `
clock:
  year_bc: 480
  day: 12
  rate: 0.5
entities:
  - name: galley
    position: [0.25, 0, 0]
    mesh: meshes/galley.obj
    hidden: true
  - name: hoplite
    position: [-0.4, -0.4, 0]
    rotation: [0, 0, 1.5]
    mesh: meshes/hoplite.obj
    navigator: [neutral, forest]
    mover: {speed: 0.2, angular_speed: 3}
    goal: [0.4, 0.4, 0]
    ship:
      hull: galley
      sea: [sea]
  - position: [0, 0, 1]
    expiry: 3
    emitter:
      type: smoke
      capacity: 8
      lifetime: {min: 1, max: 2}
      size: {min: 0.1, max: 0.2}
      prefill: true
      attach_to: hoplite
      destroy_with_parent: true
`

func TestLoadScene(t *testing.T) {
	s, err := LoadScene([]byte(harbour))
	require.NoError(t, err)
	require.Len(t, s.Entities, 3)
	require.NotNil(t, s.Clock)
	assert.Equal(t, 480, s.Clock.YearBC)

	hoplite := s.Entities[1]
	assert.Equal(t, vmath.V3(-0.4, -0.4, 0), hoplite.Position.Vec3)
	require.NotNil(t, hoplite.Goal)
	assert.Equal(t, vmath.V3(0.4, 0.4, 0), hoplite.Goal.Vec3)
	assert.Equal(t, particle.Range{Min: 1, Max: 2}, s.Entities[2].Emitter.Lifetime)
}

func TestLoadSceneBadPoint(t *testing.T) {
	_, err := LoadScene([]byte("entities:\n  - position: [1, 2]\n"))
	assert.ErrorContains(t, err, "expected [x, y, z]")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	_, err := LoadScene([]byte(`
entities:
  - name: a
    navigator: [lava]
  - name: b
    emitter: {type: sparks}
  - name: c
    ship: {land: [swamp]}
`))
	require.Error(t, err)
	// unknown area, unknown emitter type, missing hull, unknown land area
	assert.Len(t, multierr.Errors(err), 4)
}

func TestSpawn(t *testing.T) {
	s, err := LoadScene([]byte(harbour))
	require.NoError(t, err)
	w := ecs.NewWorld()

	ids, err := Spawn(w, s)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	galley, hoplite, smoke := ids[0], ids[1], ids[2]

	assert.Equal(t, hoplite, w.FindEntityWithName(ecs.Intern("hoplite")))
	assert.True(t, w.Name(smoke).IsZero())

	r := ecs.Get[component.Renderable](w, galley)
	assert.False(t, r.Visible)
	assert.Equal(t, resource.IDOf("meshes/galley.obj"), r.Mesh)

	tr := ecs.Get[component.Transform](w, hoplite)
	assert.Equal(t, vmath.V3(0, 0, 1.5), tr.Rotation)
	assert.Equal(t, navmap.Neutral|navmap.Forest, ecs.Get[component.Navigator](w, hoplite).Mask)
	assert.Equal(t, component.Mover{Speed: 0.2, AngularSpeed: 3}, *ecs.Get[component.Mover](w, hoplite))
	assert.Equal(t, vmath.V3(0.4, 0.4, 0), ecs.Get[component.PathRequest](w, hoplite).Goal)

	ship := ecs.Get[component.Ship](w, hoplite)
	assert.Equal(t, galley, ship.Hull)
	assert.Equal(t, navmap.Sea, ship.SeaMask)
	assert.Equal(t, navmap.Land, ship.LandMask)

	em := ecs.Get[particle.Emitter](w, smoke)
	assert.Equal(t, 8, em.Len())
	assert.True(t, em.Attached)
	assert.Equal(t, hoplite, em.Parent)
	assert.True(t, em.DestroyWithParent)
	for _, l := range em.Lifetimes {
		assert.GreaterOrEqual(t, l, 1.0)
		assert.LessOrEqual(t, l, 2.0)
	}
	assert.Equal(t, 3.0, ecs.Get[component.Expiry](w, smoke).Remaining)

	clock := ecs.Singleton[component.Clock](w)
	assert.Equal(t, 12, clock.Now.Day)
	assert.Equal(t, 0.5, clock.Rate)
}

func TestSpawnResolvesWorldNames(t *testing.T) {
	w := ecs.NewWorld()
	hull := w.CreateNamedEntity(ecs.Intern("trireme"))

	s, err := LoadScene([]byte("entities:\n  - name: rower\n    ship: {hull: trireme}\n"))
	require.NoError(t, err)
	ids, err := Spawn(w, s)
	require.NoError(t, err)
	assert.Equal(t, hull, ecs.Get[component.Ship](w, ids[0]).Hull)
}

func TestSpawnUnknownReferenceLeavesWorldUntouched(t *testing.T) {
	w := ecs.NewWorld()
	s, err := LoadScene([]byte(`
entities:
  - name: rower
    ship: {hull: nowhere}
  - emitter: {type: smoke, attach_to: ghost}
`))
	require.NoError(t, err)

	_, err = Spawn(w, s)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, 0, w.Len())
}

func TestSpawnEmbarkedShip(t *testing.T) {
	s, err := LoadScene([]byte(`
entities:
  - name: hero
    mesh: meshes/hero.obj
    navigator: [neutral, forest]
    ship: {hull: hull, embarked: true}
  - name: hull
    mesh: meshes/hull.obj
    hidden: true
`))
	require.NoError(t, err)
	w := ecs.NewWorld()
	ids, err := Spawn(w, s)
	require.NoError(t, err)
	hero, hull := ids[0], ids[1]

	assert.True(t, ecs.Get[component.Ship](w, hero).Embarked)
	assert.Equal(t, navmap.Sea, ecs.Get[component.Navigator](w, hero).Mask)
	assert.False(t, ecs.Get[component.Renderable](w, hero).Visible)
	assert.True(t, ecs.Get[component.Renderable](w, hull).Visible)
}

func TestLoadSceneResource(t *testing.T) {
	store := resource.NewStore(fstest.MapFS{
		"scenes/camp.yaml": {Data: []byte("entities:\n  - name: fire\n    position: [1, 2, 3]\n")},
		"scenes/camp.json": {Data: []byte(`{
			"clock": {"year_bc": 490, "rate": 0.25},
			"entities": [
				{"name": "fire", "position": [1, 2, 3],
				 "emitter": {"type": "smoke", "capacity": 4, "lifetime": {"min": 1, "max": 2}, "attach_to": "fire"}}
			]
		}`)},
		"scenes/bad.json": {Data: []byte(`{"entities": [{"emitter": {"type": "sparks"}}]}`)},
	}, zap.NewNop())

	yamlID, err := store.Load("scenes/camp.yaml")
	require.NoError(t, err)
	fromYAML, err := LoadSceneResource(store, yamlID)
	require.NoError(t, err)
	assert.Equal(t, vmath.V3(1, 2, 3), fromYAML.Entities[0].Position.Vec3)

	jsonID, err := store.Load("scenes/camp.json")
	require.NoError(t, err)
	fromJSON, err := LoadSceneResource(store, jsonID)
	require.NoError(t, err)
	require.Len(t, fromJSON.Entities, 1)
	fire := fromJSON.Entities[0]
	assert.Equal(t, vmath.V3(1, 2, 3), fire.Position.Vec3)
	require.NotNil(t, fire.Emitter)
	assert.Equal(t, "fire", fire.Emitter.AttachTo)
	assert.Equal(t, particle.Range{Min: 1, Max: 2}, fire.Emitter.Lifetime)
	assert.Equal(t, 490, fromJSON.Clock.YearBC)

	badID, err := store.Load("scenes/bad.json")
	require.NoError(t, err)
	_, err = LoadSceneResource(store, badID)
	assert.ErrorContains(t, err, "sparks")

	_, err = LoadSceneResource(store, resource.IDOf("scenes/missing.yaml"))
	assert.Error(t, err)
}
