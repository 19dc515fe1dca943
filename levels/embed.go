package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Default physics settings applied when a scene leaves them at zero.
const (
	DefaultIterations = 20
	DefaultDamping    = 1.0
	DefaultStep       = 1.0 / 60.0
)

// Scene lists the prefabs to spawn and the physics space they share.
type Scene struct {
	Name     string   `yaml:"name"`
	Physics  Physics  `yaml:"physics"`
	Entities []Entity `yaml:"entities"`
}

type Physics struct {
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	Iterations int     `yaml:"iterations"`
	Damping    float64 `yaml:"damping"`
	Step       float64 `yaml:"step"`
}

// Entity places a prefab. Position fields override the prefab transform
// when set; Debug forces debug tracing on for the spawned entity.
type Entity struct {
	Prefab   string   `yaml:"prefab"`
	X        *float64 `yaml:"x"`
	Y        *float64 `yaml:"y"`
	Rotation *float64 `yaml:"rotation"`
	Debug    bool     `yaml:"debug"`
}

// LoadScene reads name from disk when it exists there, else from the
// embedded scenes.
func LoadScene(name string) (*Scene, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, embeddedName(name))
	}
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

func embeddedName(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return s
}

func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	for i, e := range scene.Entities {
		if e.Prefab == "" {
			return nil, fmt.Errorf("scene %q: entity %d has no prefab", scene.Name, i)
		}
	}
	scene.Physics.applyDefaults()
	return &scene, nil
}

func (p *Physics) applyDefaults() {
	if p.Iterations <= 0 {
		p.Iterations = DefaultIterations
	}
	if p.Damping <= 0 {
		p.Damping = DefaultDamping
	}
	if p.Step <= 0 {
		p.Step = DefaultStep
	}
}
