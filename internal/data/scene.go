// Package data loads scene definitions and spawns them into a World.
package data

import (
	"fmt"
	"path"

	"github.com/goccy/go-json"
	"github.com/overworld/core/internal/navmap"
	"github.com/overworld/core/internal/particle"
	"github.com/overworld/core/internal/resource"
	"github.com/overworld/core/internal/vmath"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Scene is the root of a scene file.
type Scene struct {
	Clock    *ClockEntry   `yaml:"clock" json:"clock"`
	Entities []EntityEntry `yaml:"entities" json:"entities"`
}

// ClockEntry seeds the game clock singleton.
type ClockEntry struct {
	YearBC int     `yaml:"year_bc" json:"year_bc"`
	Day    int     `yaml:"day" json:"day"`
	Phase  float64 `yaml:"phase" json:"phase"`
	Rate   float64 `yaml:"rate" json:"rate"` // day-phase radians per second
}

// EntityEntry describes one entity and the components to give it. Absent
// sections add nothing.
type EntityEntry struct {
	Name      string        `yaml:"name" json:"name"`
	Position  Point         `yaml:"position" json:"position"`
	Rotation  Point         `yaml:"rotation" json:"rotation"`
	Mesh      string        `yaml:"mesh" json:"mesh"`     // resource path; adds a Renderable
	Hidden    bool          `yaml:"hidden" json:"hidden"` // Renderable starts invisible
	Navigator []string      `yaml:"navigator" json:"navigator"`
	Mover     *MoverEntry   `yaml:"mover" json:"mover"`
	Goal      *Point        `yaml:"goal" json:"goal"` // initial path request
	Ship      *ShipEntry    `yaml:"ship" json:"ship"`
	Emitter   *EmitterEntry `yaml:"emitter" json:"emitter"`
	Expiry    float64       `yaml:"expiry" json:"expiry"` // seconds; 0 = never
}

type MoverEntry struct {
	Speed        float64 `yaml:"speed" json:"speed"`
	AngularSpeed float64 `yaml:"angular_speed" json:"angular_speed"`
}

// ShipEntry lets a land unit embark onto the hull entity named Hull.
type ShipEntry struct {
	Hull     string   `yaml:"hull" json:"hull"`
	Embarked bool     `yaml:"embarked" json:"embarked"`
	Land     []string `yaml:"land" json:"land"`
	Sea      []string `yaml:"sea" json:"sea"`
}

type EmitterEntry struct {
	Type              string         `yaml:"type" json:"type"`
	Capacity          int            `yaml:"capacity" json:"capacity"`
	Lifetime          particle.Range `yaml:"lifetime" json:"lifetime"`
	X                 particle.Range `yaml:"x" json:"x"`
	Y                 particle.Range `yaml:"y" json:"y"`
	Z                 particle.Range `yaml:"z" json:"z"`
	Size              particle.Range `yaml:"size" json:"size"`
	Offset            Point          `yaml:"offset" json:"offset"`
	Prefill           bool           `yaml:"prefill" json:"prefill"`
	AttachTo          string         `yaml:"attach_to" json:"attach_to"` // entity name
	DestroyWithParent bool           `yaml:"destroy_with_parent" json:"destroy_with_parent"`
}

// Point is a vector written as a three element sequence, e.g. [0.5, -0.25, 0].
type Point struct {
	vmath.Vec3
}

func (p *Point) UnmarshalYAML(n *yaml.Node) error {
	var xyz []float64
	if err := n.Decode(&xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return fmt.Errorf("line %d: expected [x, y, z], got %d values", n.Line, len(xyz))
	}
	p.Vec3 = vmath.V3(xyz[0], xyz[1], xyz[2])
	return nil
}

func (p *Point) UnmarshalJSON(b []byte) error {
	var xyz []float64
	if err := json.Unmarshal(b, &xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return fmt.Errorf("expected [x, y, z], got %d values", len(xyz))
	}
	p.Vec3 = vmath.V3(xyz[0], xyz[1], xyz[2])
	return nil
}

// LoadScene parses a scene document and validates it.
func LoadScene(raw []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSceneResource decodes a scene already loaded into the store. Scenes
// ending in .json go through the store's JSON decoder; anything else is
// parsed as YAML.
func LoadSceneResource(store *resource.Store, id resource.ID) (*Scene, error) {
	r, ok := store.Get(id)
	if !ok {
		return nil, fmt.Errorf("scene %016x not loaded", uint64(id))
	}
	if path.Ext(r.Path) != ".json" {
		raw, err := store.Text(id)
		if err != nil {
			return nil, err
		}
		return LoadScene([]byte(raw))
	}
	var s Scene
	if err := store.DecodeJSON(id, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the fields that only make sense against the taxonomies:
// area names and emitter types. Name references are checked by Spawn, which
// also sees the entities already in the World.
func (s *Scene) Validate() error {
	var err error
	for i := range s.Entities {
		e := &s.Entities[i]
		where := entryLabel(i, e)
		if _, bad := navmap.ParseMask(e.Navigator); len(bad) > 0 {
			err = multierr.Append(err, fmt.Errorf("%s: unknown navigator areas %v", where, bad))
		}
		if e.Ship != nil {
			if e.Ship.Hull == "" {
				err = multierr.Append(err, fmt.Errorf("%s: ship without hull", where))
			}
			if _, bad := navmap.ParseMask(e.Ship.Land); len(bad) > 0 {
				err = multierr.Append(err, fmt.Errorf("%s: unknown ship land areas %v", where, bad))
			}
			if _, bad := navmap.ParseMask(e.Ship.Sea); len(bad) > 0 {
				err = multierr.Append(err, fmt.Errorf("%s: unknown ship sea areas %v", where, bad))
			}
		}
		if e.Emitter != nil {
			if _, perr := particle.ParseType(e.Emitter.Type); perr != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", where, perr))
			}
			if e.Emitter.Capacity < 0 {
				err = multierr.Append(err, fmt.Errorf("%s: negative emitter capacity", where))
			}
		}
		if e.Expiry < 0 {
			err = multierr.Append(err, fmt.Errorf("%s: negative expiry", where))
		}
	}
	return err
}

func entryLabel(i int, e *EntityEntry) string {
	if e.Name != "" {
		return fmt.Sprintf("entity %d (%s)", i, e.Name)
	}
	return fmt.Sprintf("entity %d", i)
}
