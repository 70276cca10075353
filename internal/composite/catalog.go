package composite

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/polarview/satcomp/internal/pkg/logger"
)

// catalogEnv points at an on-disk catalog overriding the embedded default.
const catalogEnv = "SATCOMP_COMPOSITES_YAML"

//go:embed composites.yaml
var defaultCatalogFS embed.FS

type yamlCatalog struct {
	Catalog    string          `yaml:"catalog"`
	Version    int             `yaml:"version"`
	Composites []yamlComposite `yaml:"composites"`
}

type yamlComposite struct {
	Name          string         `yaml:"name"`
	Compositor    string         `yaml:"compositor"`
	Prerequisites string         `yaml:"prerequisites"`
	Defaults      map[string]any `yaml:"defaults"`
	Enabled       *bool          `yaml:"enabled"`
}

// Catalog is the set of registered composite descriptors, keyed by name,
// in declaration order.
type Catalog struct {
	order       []string
	descriptors map[string]Descriptor
}

// Names lists descriptors in declaration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Descriptor(name string) (Descriptor, bool) {
	d, ok := c.descriptors[name]
	return d, ok
}

// Compositor builds the compositor for a named descriptor.
func (c *Catalog) Compositor(name string, deps Deps) (Compositor, error) {
	d, ok := c.descriptors[name]
	if !ok {
		return nil, fmt.Errorf("composite %q is not in the catalog", name)
	}
	return New(d, deps)
}

// LoadCatalog reads the composite catalog: the file named by
// SATCOMP_COMPOSITES_YAML when set, the embedded default otherwise.
func LoadCatalog(log *logger.Logger) (*Catalog, error) {
	if log == nil {
		log = logger.Nop()
	}
	if path := strings.TrimSpace(os.Getenv(catalogEnv)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("composite catalog %s: %w", path, err)
		}
		log.Info("loading composite catalog", "path", path)
		return ParseCatalog(data)
	}
	data, err := defaultCatalogFS.ReadFile("composites.yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded composite catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("composite catalog: %w", err)
	}
	if doc.Catalog != "" && doc.Catalog != "composites" {
		return nil, fmt.Errorf("composite catalog: unexpected catalog kind %q", doc.Catalog)
	}

	c := &Catalog{descriptors: make(map[string]Descriptor, len(doc.Composites))}
	for i, entry := range doc.Composites {
		if entry.Enabled != nil && !*entry.Enabled {
			continue
		}
		if entry.Name == "" {
			return nil, fmt.Errorf("composite catalog: entry %d has no name", i)
		}
		if entry.Compositor == "" {
			return nil, fmt.Errorf("composite catalog: composite %q has no compositor tag", entry.Name)
		}
		if _, dup := c.descriptors[entry.Name]; dup {
			return nil, fmt.Errorf("composite catalog: duplicate composite %q", entry.Name)
		}
		c.descriptors[entry.Name] = NewDescriptor(entry.Name, entry.Compositor, entry.Prerequisites, entry.Defaults)
		c.order = append(c.order, entry.Name)
	}
	return c, nil
}
