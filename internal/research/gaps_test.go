// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"testing"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

func TestDetectGaps(t *testing.T) {
	tests := []struct {
		name     string
		findings []types.Finding
		want     []string
	}{
		{
			name:     "no findings leaves every category open",
			findings: nil,
			want:     []string{"materials data", "implementation guidance", "case studies", "quantitative results"},
		},
		{
			name: "materials collection satisfies materials data",
			findings: []types.Finding{
				{Collection: "materials", Excerpt: "zz"},
			},
			want: []string{"implementation guidance", "case studies", "quantitative results"},
		},
		{
			name: "keywords satisfy categories regardless of collection",
			findings: []types.Finding{
				{Collection: "principles", Excerpt: "an aluminum alloy example, measured at 30 percent, applied step by step"},
			},
			want: nil,
		},
		{
			name: "unrelated excerpts satisfy nothing",
			findings: []types.Finding{
				{Collection: "principles", Excerpt: "zzz qqq"},
			},
			want: []string{"materials data", "implementation guidance", "case studies", "quantitative results"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gaps := DetectGaps(tt.findings, DefaultCategories, 2)
			if len(gaps) != len(tt.want) {
				t.Fatalf("got %d gaps %v, want %d", len(gaps), gaps, len(tt.want))
			}
			for i, g := range gaps {
				if g.Category != tt.want[i] {
					t.Errorf("gap %d = %s, want %s", i, g.Category, tt.want[i])
				}
				if g.DetectedAtDepth != 2 {
					t.Errorf("gap %s tagged depth %d, want 2", g.Category, g.DetectedAtDepth)
				}
			}
		})
	}
}
