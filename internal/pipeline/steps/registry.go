// Package steps provides stage definitions and dependency validation
// for the article generation pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Stage names
const (
	StageCompose    = "compose"
	StageGeneration = "generation"
	StageNormalize  = "normalize"
	StageEnrichment = "enrichment"
	StageRender     = "render"
)

// Stage categories, used on progress events.
const (
	CategoryPrompt     = "prompt"
	CategoryGeneration = "generation"
	CategoryEnrichment = "enrichment"
	CategoryOutput     = "output"
)

// StageDefinition defines metadata for a pipeline stage
type StageDefinition struct {
	Name         string
	Category     string
	Description  string
	Position     int // 1-based order in a run
	Dependencies []string
	// Optional dependencies may be missing; the stage then runs degraded.
	Optional []string
	// Fatal stages abort the run on error; the others are skipped with a warning.
	Fatal bool
}

// StageRegistry holds all stage definitions
var StageRegistry = map[string]StageDefinition{
	StageCompose: {
		Name:         StageCompose,
		Category:     CategoryPrompt,
		Description:  "Composing prompt",
		Position:     1,
		Dependencies: []string{},
		Fatal:        true,
	},
	StageGeneration: {
		Name:         StageGeneration,
		Category:     CategoryGeneration,
		Description:  "Generating article",
		Position:     2,
		Dependencies: []string{StageCompose},
		Fatal:        true,
	},
	StageNormalize: {
		Name:         StageNormalize,
		Category:     CategoryGeneration,
		Description:  "Normalizing headings",
		Position:     3,
		Dependencies: []string{StageGeneration},
		Fatal:        true,
	},
	StageEnrichment: {
		Name:         StageEnrichment,
		Category:     CategoryEnrichment,
		Description:  "Enriching article (keywords, description, images)",
		Position:     4,
		Dependencies: []string{StageNormalize},
	},
	StageRender: {
		Name:         StageRender,
		Category:     CategoryOutput,
		Description:  "Writing output file",
		Position:     5,
		Dependencies: []string{StageNormalize},
		Optional:     []string{StageEnrichment},
		Fatal:        true,
	},
}

// Ordered returns the stage definitions sorted by position.
func Ordered() []StageDefinition {
	defs := make([]StageDefinition, 0, len(StageRegistry))
	for _, def := range StageRegistry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Position < defs[j].Position })
	return defs
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every required dependency of a stage has completed.
func ValidateDependencies(completed map[string]bool, stageName string) error {
	def, ok := StageRegistry[stageName]
	if !ok {
		return fmt.Errorf("unknown stage: %s", stageName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stageName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// MissingOptional returns the optional dependencies of a stage that have not completed.
func MissingOptional(completed map[string]bool, stageName string) []string {
	var missing []string
	for _, dep := range StageRegistry[stageName].Optional {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	return missing
}
