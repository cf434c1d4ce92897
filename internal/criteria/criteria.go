package criteria

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaDocument []byte

//go:embed default_criteria.json
var defaultDocument []byte

// Criterion is one scoring dimension evaluators fill in for every team.
type Criterion struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Set is the ordered criteria definition plus the shared score range.
type Set struct {
	Criteria []Criterion `json:"criteria"`
	MinScore float64     `json:"min_score"`
	MaxScore float64     `json:"max_score"`
}

// Keys returns the criterion keys in definition order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s.Criteria))
	for _, c := range s.Criteria {
		keys = append(keys, c.Key)
	}
	return keys
}

// Has reports whether the set declares the given criterion key.
func (s Set) Has(key string) bool {
	for _, c := range s.Criteria {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Load reads the criteria definition. When path is empty the embedded default
// set ships. Either way the document is checked against the embedded JSON
// Schema before use, and the configured score range overrides the document's.
func Load(path string, minScore, maxScore float64) (Set, error) {
	document := defaultDocument
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Set{}, fmt.Errorf("failed to read criteria file: %w", err)
		}
		document = data
	}

	if err := validateDocument(document); err != nil {
		return Set{}, err
	}

	var set Set
	if err := json.Unmarshal(document, &set); err != nil {
		return Set{}, fmt.Errorf("failed to decode criteria document: %w", err)
	}

	seen := map[string]struct{}{}
	for _, c := range set.Criteria {
		if _, dup := seen[c.Key]; dup {
			return Set{}, fmt.Errorf("duplicate criterion key %q", c.Key)
		}
		seen[c.Key] = struct{}{}
	}

	set.MinScore = minScore
	set.MaxScore = maxScore

	sort.SliceStable(set.Criteria, func(i, j int) bool {
		return set.Criteria[i].Key < set.Criteria[j].Key
	})

	return set, nil
}

func validateDocument(document []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("criteria-schema.json", bytes.NewReader(schemaDocument)); err != nil {
		return fmt.Errorf("failed to load criteria schema: %w", err)
	}

	schema, err := compiler.Compile("criteria-schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile criteria schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(document, &instance); err != nil {
		return fmt.Errorf("criteria document is not valid json: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("criteria document rejected by schema: %w", err)
	}

	return nil
}
