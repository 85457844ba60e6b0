package upgrade

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk catalog layout shared by the TOML and YAML formats.
type catalogFile struct {
	Upgrades []upgradeEntry `toml:"upgrade" yaml:"upgrades"`
}

type upgradeEntry struct {
	ID             int     `toml:"id" yaml:"id"`
	Name           string  `toml:"name" yaml:"name"`
	Description    string  `toml:"description" yaml:"description"`
	Cost           int     `toml:"cost" yaml:"cost"`
	Effect         string  `toml:"effect" yaml:"effect"`
	Value          float64 `toml:"value" yaml:"value"`
	TierMultiplier float64 `toml:"tier-multiplier" yaml:"tier-multiplier"`
	Requires       []int   `toml:"requires" yaml:"requires"`
}

// LoadFile reads a catalog from a .toml, .yaml or .yml file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var file catalogFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.Decode(string(data), &file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown catalog key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	return file.catalog()
}

func (f catalogFile) catalog() (*Catalog, error) {
	if len(f.Upgrades) == 0 {
		return nil, fmt.Errorf("catalog has no upgrades")
	}
	upgrades := make([]Upgrade, 0, len(f.Upgrades))
	for _, e := range f.Upgrades {
		kind, err := ParseEffectKind(e.Effect)
		if err != nil {
			return nil, fmt.Errorf("upgrade %d: %w", e.ID, err)
		}
		upgrades = append(upgrades, Upgrade{
			ID:              e.ID,
			Name:            e.Name,
			Description:     e.Description,
			Cost:            e.Cost,
			Effect:          Effect{Kind: kind, Value: e.Value, TierMultiplier: e.TierMultiplier},
			PrerequisiteIDs: append([]int(nil), e.Requires...),
		})
	}
	return NewCatalog(upgrades)
}
