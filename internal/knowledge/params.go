// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"regexp"
	"sort"
	"strings"
)

// parameterKeywords maps each engineering parameter to the problem-text
// words that indicate it.
var parameterKeywords = map[int][]string{
	1:  {"weight", "mass", "heavy", "light"},
	3:  {"length", "height", "width", "dimension"},
	5:  {"area", "surface", "coverage"},
	7:  {"volume", "capacity", "space"},
	9:  {"speed", "velocity", "fast", "slow", "quick"},
	10: {"force", "load", "thrust"},
	11: {"stress", "pressure", "strain", "tension", "compression"},
	12: {"shape", "form", "geometry", "contour"},
	13: {"stability", "stable", "unstable", "equilibrium"},
	14: {"strength", "durability", "robust", "fragile"},
	15: {"lifetime", "longevity", "lifespan", "endurance"},
	17: {"temperature", "heat", "cold", "thermal"},
	18: {"brightness", "illumination", "luminosity"},
	19: {"energy", "consumption", "fuel"},
	21: {"power", "wattage", "horsepower"},
	22: {"waste", "dissipation", "inefficiency"},
	23: {"spillage", "leakage", "scrap"},
	24: {"information", "data", "signal"},
	25: {"time", "duration", "delay", "cycle time"},
	26: {"quantity", "amount", "count"},
	27: {"reliability", "dependable", "consistent", "failure"},
	28: {"accuracy", "precision", "exact", "error"},
	29: {"tolerance", "surface finish", "repeatability"},
	30: {"corrosion", "contamination", "environmental damage"},
	31: {"harmful", "side effect", "emission", "noise"},
	32: {"manufacture", "manufacturing", "production", "fabrication", "assembly"},
	33: {"usability", "user-friendly", "convenience", "ease of use"},
	34: {"repair", "maintenance", "service", "fix"},
	35: {"adaptability", "flexible", "versatile", "adjustable"},
	36: {"complexity", "complicated", "intricate"},
	37: {"monitor", "detect", "inspection", "diagnose"},
	38: {"automation", "automatic", "autonomous", "manual"},
	39: {"productivity", "throughput", "output", "efficiency"},
}

// contradictionPatterns capture explicit "better X at the cost of Y"
// phrasings. The first group improves, the second worsens.
var contradictionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`increase\s+([\w\s-]+?)\s+while\s+(?:reducing|decreasing|keeping|maintaining)\s+([\w\s-]+?)(?:[.,;]|$)`),
	regexp.MustCompile(`improve\s+([\w\s-]+?)\s+without\s+(?:increasing|adding|worsening|losing|sacrificing)\s+([\w\s-]+?)(?:[.,;]|$)`),
	regexp.MustCompile(`reduce\s+([\w\s-]+?)\s+while\s+(?:maintaining|keeping|preserving)\s+([\w\s-]+?)(?:[.,;]|$)`),
	regexp.MustCompile(`([\w\s-]+?)\s+versus\s+([\w\s-]+?)(?:[.,;]|$)`),
	regexp.MustCompile(`([\w\s-]+?)\s+vs\.?\s+([\w\s-]+?)(?:[.,;]|$)`),
}

// ParametersFromText returns the engineering parameters whose keywords
// appear in the text, in ascending parameter order.
func ParametersFromText(text string) []int {
	lower := strings.ToLower(text)
	var ids []int
	for id, keywords := range parameterKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Ints(ids)
	return ids
}

// ContradictionsFromText extracts (improving, worsening) parameter
// pairs from explicit trade-off phrasings in the problem text. Pairs
// are unique and ordered by first appearance.
func ContradictionsFromText(text string) [][2]int {
	lower := strings.ToLower(text)
	seen := make(map[[2]int]struct{})
	var pairs [][2]int
	for _, pattern := range contradictionPatterns {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			if len(m) < 3 {
				continue
			}
			for _, improving := range ParametersFromText(m[1]) {
				for _, worsening := range ParametersFromText(m[2]) {
					if improving == worsening {
						continue
					}
					pair := [2]int{improving, worsening}
					if _, dup := seen[pair]; dup {
						continue
					}
					seen[pair] = struct{}{}
					pairs = append(pairs, pair)
				}
			}
		}
	}
	return pairs
}
