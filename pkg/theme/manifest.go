package theme

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// manifestFile mirrors gotheme.Manifest with explicit decoding tags so the
// on-disk format does not depend on the library's struct tags.
type manifestFile struct {
	Name      string                 `json:"name" yaml:"name"`
	Version   string                 `json:"version" yaml:"version"`
	Tokens    map[string]string      `json:"tokens" yaml:"tokens"`
	Templates map[string]string      `json:"templates" yaml:"templates"`
	Assets    assetsFile             `json:"assets" yaml:"assets"`
	Variants  map[string]variantFile `json:"variants" yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `json:"prefix" yaml:"prefix"`
	Files  map[string]string `json:"files" yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `json:"tokens" yaml:"tokens"`
	Templates map[string]string `json:"templates" yaml:"templates"`
	Assets    assetsFile        `json:"assets" yaml:"assets"`
}

// LoadManifests reads every *.json, *.yaml and *.yml file in fsys (walking
// subdirectories) and decodes it as a theme manifest. Results are sorted by
// theme name.
func LoadManifests(fsys fs.FS) ([]*gotheme.Manifest, error) {
	if fsys == nil {
		return nil, fmt.Errorf("theme: manifest filesystem is nil")
	}

	var manifests []*gotheme.Manifest
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(name)) {
		case ".json", ".yaml", ".yml":
		default:
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("theme: read manifest %s: %w", name, err)
		}
		manifest, err := ParseManifest(name, data)
		if err != nil {
			return err
		}
		manifests = append(manifests, manifest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Name < manifests[j].Name
	})
	return manifests, nil
}

// ParseManifest decodes a single manifest. JSON is tried first for .json
// files, YAML otherwise.
func ParseManifest(name string, data []byte) (*gotheme.Manifest, error) {
	var file manifestFile
	if strings.EqualFold(path.Ext(name), ".json") {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("theme: parse manifest %s: %w", name, err)
		}
	} else if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("theme: parse manifest %s: %w", name, err)
	}

	file.Name = strings.TrimSpace(file.Name)
	if file.Name == "" {
		return nil, fmt.Errorf("theme: manifest %s: name is required", name)
	}
	return file.toManifest(), nil
}

func (m manifestFile) toManifest() *gotheme.Manifest {
	manifest := &gotheme.Manifest{
		Name:      m.Name,
		Version:   strings.TrimSpace(m.Version),
		Tokens:    copyStringMap(m.Tokens),
		Templates: copyStringMap(m.Templates),
		Assets:    m.Assets.toAssets(),
	}
	if len(m.Variants) > 0 {
		manifest.Variants = make(map[string]gotheme.Variant, len(m.Variants))
		for name, variant := range m.Variants {
			manifest.Variants[strings.TrimSpace(name)] = gotheme.Variant{
				Tokens:    copyStringMap(variant.Tokens),
				Templates: copyStringMap(variant.Templates),
				Assets:    variant.Assets.toAssets(),
			}
		}
	}
	return manifest
}

func (a assetsFile) toAssets() gotheme.Assets {
	return gotheme.Assets{
		Prefix: strings.TrimSpace(a.Prefix),
		Files:  copyStringMap(a.Files),
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
