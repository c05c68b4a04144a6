// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materials

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Requirement constrains one material property. Min and Max bound a
// range; Target asks for the closest value. Nil fields are unset.
type Requirement struct {
	Min    *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Target *float64 `json:"target,omitempty" yaml:"target,omitempty"`
}

// Recommendation is one scored material suggestion.
type Recommendation struct {
	Material   types.Material `json:"material"`
	MatchScore float64        `json:"match_score"`
	TotalScore float64        `json:"total_score"`
}

// matchScore rates how well a material meets the requirements, in
// [0, 1]. Properties the material does not report contribute nothing.
func matchScore(m types.Material, requirements map[string]Requirement) float64 {
	var score, weight float64
	for prop, req := range requirements {
		actual, ok := m.Properties[prop]
		if !ok {
			continue
		}
		if req.Min != nil || req.Max != nil {
			if req.Min != nil {
				if actual >= *req.Min {
					score++
				}
				weight++
			}
			if req.Max != nil {
				if actual <= *req.Max {
					score++
				}
				weight++
			}
		}
		if req.Target != nil {
			diff := math.Abs(actual-*req.Target) / math.Max(math.Abs(actual), math.Abs(*req.Target))
			score += math.Max(0, 1-diff)
			weight++
		}
	}
	if weight == 0 {
		return 0
	}
	return score / weight
}

// Recommend scores every material against the requirements and returns
// the topK best. Constraints of the form "no_<word>" exclude materials
// whose category or name contains the word. The total score folds in a
// cost discount and a sustainability bonus so equal matches prefer
// cheaper, cleaner materials.
func (s *Store) Recommend(ctx context.Context, requirements map[string]Requirement, constraints []string, topK int) ([]Recommendation, error) {
	all, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 5
	}

	var recs []Recommendation
	for _, m := range all {
		if excluded(m, constraints) {
			continue
		}
		match := matchScore(m, requirements)
		costFactor := 1.0 - (m.CostIndex/10.0)*0.3
		total := match*costFactor + m.SustainabilityScore*0.2
		recs = append(recs, Recommendation{Material: m, MatchScore: match, TotalScore: total})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].TotalScore != recs[j].TotalScore {
			return recs[i].TotalScore > recs[j].TotalScore
		}
		return recs[i].Material.ID < recs[j].Material.ID
	})
	if len(recs) > topK {
		recs = recs[:topK]
	}
	return recs, nil
}

func excluded(m types.Material, constraints []string) bool {
	for _, constraint := range constraints {
		word, ok := strings.CutPrefix(constraint, "no_")
		if !ok {
			continue
		}
		if strings.Contains(m.Category, word) || strings.Contains(strings.ToLower(m.Name), word) {
			return true
		}
	}
	return false
}

// Comparison is a property-by-property table over several materials.
type Comparison struct {
	Materials  []types.Material     `json:"materials"`
	Properties map[string][]float64 `json:"properties"`
}

// Compare builds a comparison over the named properties, defaulting to
// density, tensile strength, and cost. A missing property reports NaN
// in that material's column.
func (s *Store) Compare(ctx context.Context, ids []string, properties []string) (Comparison, error) {
	if len(ids) < 2 {
		return Comparison{}, fmt.Errorf("comparison needs at least two materials")
	}
	if len(properties) == 0 {
		properties = []string{"density", "tensile_strength", "cost_index"}
	}

	cmp := Comparison{Properties: make(map[string][]float64, len(properties))}
	for _, id := range ids {
		m, err := s.Get(ctx, id)
		if err != nil {
			return Comparison{}, err
		}
		cmp.Materials = append(cmp.Materials, m)
		for _, prop := range properties {
			value, ok := m.Properties[prop]
			if !ok {
				switch prop {
				case "cost_index":
					value, ok = m.CostIndex, true
				case "sustainability_score":
					value, ok = m.SustainabilityScore, true
				}
			}
			if !ok {
				value = math.NaN()
			}
			cmp.Properties[prop] = append(cmp.Properties[prop], value)
		}
	}
	return cmp, nil
}

// principleCategories maps inventive principles to the material
// categories they usually reach for.
var principleCategories = map[int][]string{
	1:  {"composites"},
	2:  {"composites", "polymers"},
	3:  {"composites"},
	14: {"metals", "composites"},
	17: {"composites"},
	24: {"composites", "polymers"},
	26: {"polymers"},
	27: {"polymers", "composites"},
	30: {"polymers", "elastomers"},
	31: {"porous materials"},
	35: {"smart materials", "composites"},
	36: {"phase change materials"},
	40: {"composites"},
}

// ForPrinciple returns the materials whose category suits the given
// inventive principle. Principles without a mapping default to metals.
func (s *Store) ForPrinciple(ctx context.Context, principleID int) ([]types.Material, error) {
	categories, ok := principleCategories[principleID]
	if !ok {
		categories = []string{"metals"}
	}
	var out []types.Material
	for _, category := range categories {
		ms, err := s.List(ctx, category)
		if err != nil {
			return nil, err
		}
		out = append(out, ms...)
	}
	return out, nil
}
