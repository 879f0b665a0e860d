// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package seed

import (
	_ "embed"
	"fmt"

	"github.com/tejzpr/moodlog-mcp/internal/journal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog holds the text pools synthetic activities are drawn from
type Catalog struct {
	Titles       map[string][]string `yaml:"titles"`
	Descriptions struct {
		Positive []string `yaml:"positive"`
		Neutral  []string `yaml:"neutral"`
		Negative []string `yaml:"negative"`
	} `yaml:"descriptions"`
}

// ParseCatalog decodes a YAML catalog and checks every category has titles
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for _, category := range journal.Categories() {
		if len(c.Titles[category.String()]) == 0 {
			return nil, fmt.Errorf("catalog has no titles for category %s", category)
		}
	}
	for name, pool := range map[string][]string{
		"positive": c.Descriptions.Positive,
		"neutral":  c.Descriptions.Neutral,
		"negative": c.Descriptions.Negative,
	} {
		if len(pool) == 0 {
			return nil, fmt.Errorf("catalog has no %s descriptions", name)
		}
	}
	return &c, nil
}

// DefaultCatalog returns the built-in catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}
