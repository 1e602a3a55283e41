package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile overrides parts of the config for one kind of run.
//
//	locales: [en_GB, fr_FR]
//	create_products:
//	  label_prefixes: [SUMO]
//	  items_min: 2
type Profile struct {
	Locales        []string               `yaml:"locales"`
	CreateProducts *CreateProductsProfile `yaml:"create_products"`
}

type CreateProductsProfile struct {
	LabelPrefixes []string `yaml:"label_prefixes"`
	PreorderWeeks *int     `yaml:"preorder_weeks"`
	Pricing       []string `yaml:"pricing"`
	ItemsMin      *int     `yaml:"items_min"`
	ItemsMax      *int     `yaml:"items_max"`
}

func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &p, nil
}

// Apply copies every field the profile sets onto cfg.
func (p *Profile) Apply(cfg *Config) {
	if len(p.Locales) > 0 {
		cfg.Generator.Locales = p.Locales
	}
	cp := p.CreateProducts
	if cp == nil {
		return
	}
	if len(cp.LabelPrefixes) > 0 {
		cfg.Products.LabelPrefixes = cp.LabelPrefixes
	}
	if len(cp.Pricing) > 0 {
		cfg.Products.Pricing = cp.Pricing
	}
	if cp.PreorderWeeks != nil {
		cfg.Products.PreorderWeeks = *cp.PreorderWeeks
	}
	if cp.ItemsMin != nil {
		cfg.Products.ItemsMin = *cp.ItemsMin
	}
	if cp.ItemsMax != nil {
		cfg.Products.ItemsMax = *cp.ItemsMax
	}
}
