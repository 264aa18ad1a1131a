// internal/defs/loader.go
package defs

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"go-wave-defense/internal/types"
)

// overrideFile mirrors the optional YAML balance-data file. Any section left
// empty keeps the shipped Go tables.
type overrideFile struct {
	Archetypes []ArchetypeDefinition    `yaml:"archetypes"`
	Upgrades   []UpgradeTrackDefinition `yaml:"upgrades"`
	Skills     []SkillDefinition        `yaml:"skills"`
	Research   []ResearchDefinition     `yaml:"research"`
	Items      []ItemDefinition         `yaml:"items"`
}

// LoadDefinitions overlays the shipped libraries with a YAML file. An empty
// path is a no-op so tests and the headless runner work with pure defaults.
func LoadDefinitions(path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read definitions file: %w", err)
	}
	var file overrideFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to unmarshal definitions file: %w", err)
	}

	if len(file.Archetypes) > 0 {
		ArchetypeLibrary = file.Archetypes
	}
	for _, def := range file.Upgrades {
		UpgradeLibrary[def.ID] = def
	}
	for _, def := range file.Skills {
		SkillLibrary[def.ID] = def
	}
	for _, def := range file.Research {
		ResearchLibrary[def.Key] = def
	}
	for _, def := range file.Items {
		ItemLibrary[def.ID] = def
	}

	log.Printf("Loaded definitions from %s (%d archetypes, %d skills, %d research, %d items)",
		path, len(ArchetypeLibrary), len(SkillLibrary), len(ResearchLibrary), len(ItemLibrary))
	return nil
}

// SortedSkillIDs returns skill ids in lexical order. Aggregation walks
// libraries in this order so replays fold floats identically.
func SortedSkillIDs() []string {
	return sortedKeys(SkillLibrary)
}

// SortedResearchKeys returns research keys in lexical order.
func SortedResearchKeys() []string {
	return sortedKeys(ResearchLibrary)
}

// SortedTrackIDs returns upgrade track ids in lexical order.
func SortedTrackIDs() []types.UpgradeTrackID {
	ids := make([]types.UpgradeTrackID, 0, len(UpgradeLibrary))
	for id := range UpgradeLibrary {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
