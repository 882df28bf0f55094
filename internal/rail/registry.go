package rail

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"payhub-reconciliation/internal/domain"
)

//go:embed rails.yaml
var defaultRails []byte

// HubFetcher loads the Hub records of a rail for a date window.
type HubFetcher interface {
	FetchHub(ctx context.Context, cfg Config, window domain.DateRange) ([]domain.RawHubRow, error)
}

// FetchFunc adapts a plain function to HubFetcher.
type FetchFunc func(ctx context.Context, cfg Config, window domain.DateRange) ([]domain.RawHubRow, error)

// FetchHub calls f.
func (f FetchFunc) FetchHub(ctx context.Context, cfg Config, window domain.DateRange) ([]domain.RawHubRow, error) {
	return f(ctx, cfg, window)
}

// HubLookup finds Hub records by vendor reference regardless of their date.
type HubLookup interface {
	LookupHub(ctx context.Context, cfg Config, refs []string) ([]domain.RawHubRow, error)
}

// LookupFunc adapts a plain function to HubLookup.
type LookupFunc func(ctx context.Context, cfg Config, refs []string) ([]domain.RawHubRow, error)

// LookupHub calls f.
func (f LookupFunc) LookupHub(ctx context.Context, cfg Config, refs []string) ([]domain.RawHubRow, error) {
	return f(ctx, cfg, refs)
}

// Rail is a registered rail: its configuration plus the fetcher of its Hub
// records. Lookup is set when the fetcher can also look records up by reference.
type Rail struct {
	Config Config
	Hub    HubFetcher
	Lookup HubLookup
}

// Registry resolves rails by name.
type Registry struct {
	rails map[string]Rail
}

type railsFile struct {
	Defaults struct {
		HubStatusCodes map[string]string `yaml:"hub_status_codes"`
		TenantNames    map[string]string `yaml:"tenant_names"`
		DateLayouts    []string          `yaml:"date_layouts"`
	} `yaml:"defaults"`
	Rails []Config `yaml:"rails"`
}

// LoadConfigs reads rail configurations from path, or the built-in set when path is empty.
func LoadConfigs(path string) ([]Config, error) {
	data := defaultRails
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rails file %s: %w", path, err)
		}
		data = b
	}
	return ParseConfigs(data)
}

// ParseConfigs decodes a rails document and applies its defaults to every rail.
func ParseConfigs(data []byte) ([]Config, error) {
	var f railsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rails: %w", err)
	}
	seen := make(map[string]bool, len(f.Rails))
	configs := make([]Config, 0, len(f.Rails))
	for _, c := range f.Rails {
		if c.HubStatusCodes == nil {
			c.HubStatusCodes = f.Defaults.HubStatusCodes
		}
		if c.TenantNames == nil {
			c.TenantNames = f.Defaults.TenantNames
		}
		c.DateLayouts = append(c.DateLayouts, f.Defaults.DateLayouts...)
		if err := c.validate(); err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("rail %s declared twice", c.Name)
		}
		seen[c.Name] = true
		configs = append(configs, c)
	}
	return configs, nil
}

// NewRegistry registers every config with fetcher as its Hub source.
// overrides replaces the fetcher of individual rails. A fetcher that also
// implements HubLookup serves as the rail's lookup.
func NewRegistry(configs []Config, fetcher HubFetcher, overrides map[string]HubFetcher) *Registry {
	r := &Registry{rails: make(map[string]Rail, len(configs))}
	for _, c := range configs {
		f := fetcher
		if o, ok := overrides[c.Name]; ok {
			f = o
		}
		rl := Rail{Config: c, Hub: f}
		if l, ok := f.(HubLookup); ok {
			rl.Lookup = l
		}
		r.rails[c.Name] = rl
	}
	return r
}

// Lookup returns the rail registered under name.
func (r *Registry) Lookup(name string) (Rail, bool) {
	rl, ok := r.rails[name]
	return rl, ok
}

// Names returns the registered rail names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rails))
	for n := range r.rails {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
