package world

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"collide2d/internal/components"
	"collide2d/internal/engine"
	"collide2d/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

type SceneFile struct {
	Name     string      `yaml:"name"`
	Entities []EntityDef `yaml:"entities"`
}

type EntityDef struct {
	Name       string         `yaml:"name"`
	Tags       []string       `yaml:"tags,omitempty"`
	Inactive   bool           `yaml:"inactive,omitempty"`
	Position   rl.Vector2     `yaml:"position"`
	Rotation   float32        `yaml:"rotation,omitempty"`
	Scale      *rl.Vector2    `yaml:"scale,omitempty"`
	Collider   *ColliderDef   `yaml:"collider,omitempty"`
	Kinematics *KinematicsDef `yaml:"kinematics,omitempty"`
	Owner      *OwnerDef      `yaml:"owner,omitempty"`
}

type ColliderDef struct {
	Shape    string       `yaml:"shape"` // circle, box or polygon
	Radius   float32      `yaml:"radius,omitempty"`
	Size     rl.Vector2   `yaml:"size,omitempty"`
	Points   []rl.Vector2 `yaml:"points,omitempty"`
	Offset   rl.Vector2   `yaml:"offset,omitempty"`
	Rotation float32      `yaml:"rotation,omitempty"`
	Scale    *rl.Vector2  `yaml:"scale,omitempty"`
	Origin   rl.Vector2   `yaml:"origin,omitempty"`
	Disabled bool         `yaml:"disabled,omitempty"`
	Color    string       `yaml:"color,omitempty"`
}

// KinematicsDef field names mirror components.Kinematics so copier can overlay them.
// Mass accepts .inf for an infinitely heavy body.
type KinematicsDef struct {
	Velocity             rl.Vector2 `yaml:"velocity,omitempty"`
	Acceleration         rl.Vector2 `yaml:"acceleration,omitempty"`
	Mass                 float32    `yaml:"mass,omitempty"`
	Static               bool       `yaml:"static,omitempty"`
	Drag                 float32    `yaml:"drag,omitempty"`
	AngularVelocity      float32    `yaml:"angular_velocity,omitempty"`
	AngularAcceleration  float32    `yaml:"angular_acceleration,omitempty"`
	Behaviors            []string   `yaml:"behavior,omitempty"`
	OrbitRadius          float32    `yaml:"orbit_radius,omitempty"`
	OrbitAngle           float32    `yaml:"orbit_angle,omitempty"`
	OrbitAngularVelocity float32    `yaml:"orbit_angular_velocity,omitempty"`
	PulseFrequency       float32    `yaml:"pulse_frequency,omitempty"`
	PulseAmplitude       float32    `yaml:"pulse_amplitude,omitempty"`
	BaseScale            rl.Vector2 `yaml:"base_scale,omitempty"`
}

type OwnerDef struct {
	Name   string     `yaml:"name"`
	Offset rl.Vector2 `yaml:"offset,omitempty"`
}

var (
	ErrUnknownShape    = errors.New("unknown collider shape")
	ErrUnknownBehavior = errors.New("unknown behavior")
	ErrUnknownOwner    = errors.New("owner not found")
	ErrBadMass         = errors.New("mass must be positive")
)

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

func lookupColor(name string) (rl.Color, bool) {
	c, ok := colorByName[name]
	return c, ok
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return ""
}

// --- Loading ---

// LoadScene reads a YAML scene file and adds its entities to the world. Nothing is
// added unless every entity in the file is valid.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	sf, err := ParseScene(data)
	if err != nil {
		return fmt.Errorf("parse scene %s: %w", path, err)
	}

	entities, err := BuildEntities(sf, w.Scene)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", path, err)
	}

	for _, e := range entities {
		w.Scene.Add(e)
	}
	w.logger.Info("World: scene loaded",
		zap.String("scene", sf.Name),
		zap.String("path", path),
		zap.Int("entities", len(entities)),
	)
	return nil
}

func ParseScene(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, err
	}
	return &sf, nil
}

// BuildEntities turns definitions into entities. Owners are resolved by name, first
// among the new entities and then in existing; a repeated owner name resolves to the
// first entity carrying it. Every invalid entity is reported.
func BuildEntities(sf *SceneFile, existing *engine.Scene) ([]*engine.Entity, error) {
	var errs error
	entities := make([]*engine.Entity, 0, len(sf.Entities))
	built := make([]*engine.Entity, len(sf.Entities))
	byName := make(map[string]*engine.Entity, len(sf.Entities))

	for i, def := range sf.Entities {
		e, err := buildEntity(def)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entity %d %q: %w", i, def.Name, err))
			continue
		}
		entities = append(entities, e)
		built[i] = e
		if _, dup := byName[def.Name]; !dup {
			byName[def.Name] = e
		}
	}

	for i, def := range sf.Entities {
		if def.Owner == nil {
			continue
		}
		e := built[i]
		if e == nil {
			continue
		}
		owner := byName[def.Owner.Name]
		if owner == nil && existing != nil {
			owner = existing.FindByName(def.Owner.Name)
		}
		if owner == nil {
			errs = multierr.Append(errs, fmt.Errorf("entity %d %q: %w: %q", i, def.Name, ErrUnknownOwner, def.Owner.Name))
			continue
		}
		e.Owner = &engine.Owner{Offset: def.Owner.Offset}
		e.Owner.Ref.Set(owner)
	}

	if errs != nil {
		return nil, errs
	}
	return entities, nil
}

func buildEntity(def EntityDef) (*engine.Entity, error) {
	e := engine.NewEntity(def.Name)
	e.Tags = def.Tags
	e.Active = !def.Inactive
	e.Transform.Position = def.Position
	e.Transform.Rotation = def.Rotation
	if def.Scale != nil {
		e.Transform.Scale = *def.Scale
	}

	var errs error
	if def.Collider != nil {
		col, err := buildCollider(*def.Collider)
		errs = multierr.Append(errs, err)
		e.Collider = col
	}
	if def.Kinematics != nil {
		k, err := buildKinematics(*def.Kinematics, e.Transform.Scale)
		errs = multierr.Append(errs, err)
		e.Kinematics = k
	}
	if errs != nil {
		return nil, errs
	}
	return e, nil
}

func buildCollider(def ColliderDef) (*components.Collider, error) {
	var shape geom.Shape
	switch strings.ToLower(def.Shape) {
	case "circle":
		shape = geom.NewCircle(def.Radius)
	case "box":
		shape = geom.NewBox(def.Size.X, def.Size.Y)
	case "polygon":
		shape = geom.NewPolygon(def.Points...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, def.Shape)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("collider: %w", err)
	}

	col := components.NewCollider(shape)
	col.Local.Offset = def.Offset
	col.Local.Rotation = def.Rotation
	col.Local.Origin = def.Origin
	if def.Scale != nil {
		col.Local.Scale = *def.Scale
	}
	col.Enabled = !def.Disabled
	if def.Color != "" {
		c, ok := lookupColor(def.Color)
		if !ok {
			return nil, fmt.Errorf("collider: unknown color %q", def.Color)
		}
		col.DebugColor = c
	}
	return col, nil
}

func buildKinematics(def KinematicsDef, entityScale rl.Vector2) (*components.Kinematics, error) {
	k := components.NewKinematics()
	if def.Static {
		k = components.NewStaticKinematics()
	}
	if err := copier.CopyWithOption(k, &def, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("kinematics: %w", err)
	}

	if len(def.Behaviors) > 0 {
		k.Behavior = components.BehaviorNone
		for _, name := range def.Behaviors {
			if strings.EqualFold(name, "none") {
				continue
			}
			flag, ok := components.ParseBehavior(name)
			if !ok {
				return nil, fmt.Errorf("kinematics: %w %q", ErrUnknownBehavior, name)
			}
			k.Behavior |= flag
		}
	}

	if def.BaseScale == (rl.Vector2{}) {
		k.BaseScale = entityScale
	}
	if math32.IsNaN(k.Mass) || k.Mass <= 0 {
		return nil, fmt.Errorf("kinematics: %w, got %v", ErrBadMass, k.Mass)
	}
	if k.Drag < 0 {
		return nil, fmt.Errorf("kinematics: drag must be >= 0, got %v", k.Drag)
	}
	return k, nil
}

// --- Saving ---

// SaveScene writes every entity in the scene back to YAML. Boxes are written as
// polygons.
func (w *World) SaveScene(path string) error {
	sf := SceneFile{Name: w.Scene.Name}
	for _, e := range w.Scene.Entities() {
		def, err := entityDef(e, w.Scene)
		if err != nil {
			return fmt.Errorf("save entity %q: %w", e.Name, err)
		}
		sf.Entities = append(sf.Entities, def)
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func entityDef(e *engine.Entity, scene *engine.Scene) (EntityDef, error) {
	def := EntityDef{
		Name:     e.Name,
		Tags:     e.Tags,
		Inactive: !e.Active,
		Position: e.Transform.Position,
		Rotation: e.Transform.Rotation,
	}
	if s := e.Transform.Scale; s != (rl.Vector2{X: 1, Y: 1}) {
		def.Scale = &s
	}

	if c := e.Collider; c != nil {
		cd := ColliderDef{
			Offset:   c.Local.Offset,
			Rotation: c.Local.Rotation,
			Origin:   c.Local.Origin,
			Disabled: !c.Enabled,
			Color:    lookupColorName(c.DebugColor),
		}
		if s := c.Local.Scale; s != (rl.Vector2{X: 1, Y: 1}) {
			cd.Scale = &s
		}
		switch c.Shape.Kind {
		case geom.Circle:
			cd.Shape = "circle"
			cd.Radius = c.Shape.Radius
		default:
			cd.Shape = "polygon"
			cd.Points = c.Shape.Points
		}
		def.Collider = &cd
	}

	if k := e.Kinematics; k != nil {
		var kd KinematicsDef
		if err := copier.Copy(&kd, k); err != nil {
			return def, fmt.Errorf("kinematics: %w", err)
		}
		kd.Behaviors = strings.Split(k.Behavior.String(), "|")
		def.Kinematics = &kd
	}

	if o := e.Owner; o != nil {
		if owner := o.Ref.Get(scene); owner != nil {
			def.Owner = &OwnerDef{Name: owner.Name, Offset: o.Offset}
		}
	}
	return def, nil
}
