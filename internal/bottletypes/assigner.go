// Package bottletypes annotates bottle tables with categorical labels from
// an externally supplied station to type to bottle-number mapping.
package bottletypes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"

	"hydra/pkg/contracts/domain"
)

// TypeColumn is the categorical column the assigner adds to bottle tables.
const TypeColumn = "Bottle_Type"

// DefaultType is the label applied to rows no category claims.
const DefaultType = "Unknown"

// Policy resolves the tie-break when a bottle number appears under more than
// one category for the same station. Categories are applied in sorted label
// order, so both policies are deterministic.
type Policy string

const (
	LastMatchWins  Policy = "last"
	FirstMatchWins Policy = "first"
)

// Assigner applies bottle-type labels to station collections.
type Assigner struct {
	logger       *slog.Logger
	policy       Policy
	bottleColumn string
}

// NewAssigner creates an assigner. bottleColumn is the table column holding
// bottle numbers; empty defaults to "Bottle". A nil logger falls back to
// slog.Default.
func NewAssigner(logger *slog.Logger, policy Policy, bottleColumn string) *Assigner {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == "" {
		policy = LastMatchWins
	}
	if bottleColumn == "" {
		bottleColumn = "Bottle"
	}
	return &Assigner{logger: logger, policy: policy, bottleColumn: bottleColumn}
}

// AssignTypes adds or overwrites the Bottle_Type column for every station
// present in both the collection and the type map. Every row starts as
// "Unknown"; each category then claims the rows whose bottle number is in
// its list. Stations missing from the map pass through unmodified with a
// warning; stations in the map but absent from the collection, and listed
// bottle numbers matching no row, also produce warnings. The collection is
// mutated in place and returned together with the warnings.
func (a *Assigner) AssignTypes(collection domain.Collection, typeMap domain.BottleTypeMap) (domain.Collection, []domain.Warning) {
	var warnings []domain.Warning

	for _, station := range sortedKeys(collection) {
		table := collection[station]
		categories := typeMap.Categories(station)
		if categories == nil {
			w := domain.Warning{
				Code:    domain.WarnStationNotInTypeMap,
				Station: station,
				Message: "station has no bottle-type entry; table passed through unmodified",
			}
			warnings = append(warnings, w)
			a.logger.Warn("Station missing from bottle-type map", slog.String("station", station))
			continue
		}

		bottles, ok := table.Floats(a.bottleColumn)
		if !ok {
			if raw, present := table.Strings(a.bottleColumn); present {
				bottles = make([]float64, len(raw))
				for i, cell := range raw {
					bottles[i] = domain.ParseNumeric(cell)
				}
			}
		}

		types := make([]string, table.NumRows())
		for i := range types {
			types[i] = DefaultType
		}

		for _, category := range sortedCategoryNames(categories) {
			for _, number := range categories[category] {
				matched := false
				for i, b := range bottles {
					if math.IsNaN(b) || b != math.Trunc(b) || int(b) != number {
						continue
					}
					matched = true
					if a.policy == FirstMatchWins && types[i] != DefaultType {
						continue
					}
					types[i] = category
				}
				if !matched {
					w := domain.Warning{
						Code:    domain.WarnBottleNumberUnmatched,
						Station: station,
						Message: fmt.Sprintf("bottle number %d listed under %q matches no row", number, category),
					}
					warnings = append(warnings, w)
					a.logger.Warn("Bottle number matches no row",
						slog.String("station", station),
						slog.String("category", category),
						slog.Int("bottle", number))
				}
			}
		}

		table.SetStringColumn(TypeColumn, types)
		a.logger.Debug("Assigned bottle types",
			slog.String("station", station),
			slog.Int("rows", table.NumRows()),
			slog.Int("categories", len(categories)))
	}

	for _, station := range sortedTypeMapKeys(typeMap) {
		if _, ok := collection[station]; !ok {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarnStationNotInData,
				Station: station,
				Message: "bottle-type entry has no loaded station table",
			})
			a.logger.Warn("Bottle-type entry without loaded station", slog.String("station", station))
		}
	}

	return collection, warnings
}

// LoadTypeMap reads a bottle-type map from a JSON document of the form
// {"station": {"category": [bottle numbers...]}}.
func LoadTypeMap(path string) (domain.BottleTypeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bottle-type map: %w", err)
	}
	var m domain.BottleTypeMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse bottle-type map %s: %w", path, err)
	}
	return m, nil
}

func sortedKeys(c domain.Collection) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTypeMapKeys(m domain.BottleTypeMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCategoryNames(categories map[string][]int) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
