// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materials

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/triz-copilot/internal/embed"
	"github.com/pdiddy/triz-copilot/internal/vector"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Collection is the vector collection materials are indexed into.
const Collection = "materials"

// Indexer is the slice of the vector store ingestion needs.
type Indexer interface {
	CreateCollection(ctx context.Context, name string, dims int) error
	Upsert(ctx context.Context, collection string, records []vector.Record) error
}

// Record renders a material as one indexable chunk.
func Record(m types.Material) vector.Record {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s):", m.Name, m.Category)
	for _, adv := range m.Advantages {
		fmt.Fprintf(&sb, " %s.", adv)
	}
	if len(m.Applications) > 0 {
		fmt.Fprintf(&sb, " Used in %s.", strings.Join(m.Applications, ", "))
	}
	if v, ok := m.Properties["density"]; ok {
		fmt.Fprintf(&sb, " Density %.2f g/cm3.", v)
	}
	if v, ok := m.Properties["tensile_strength"]; ok {
		fmt.Fprintf(&sb, " Tensile strength %.0f MPa.", v)
	}
	return vector.Record{
		ID:   "material-" + m.ID,
		Text: sb.String(),
		Metadata: map[string]string{
			"source":   "materials-database",
			"category": m.Category,
		},
	}
}

// Ingest embeds and indexes every stored material. Safe to re-run;
// records upsert by stable id.
func (s *Store) Ingest(ctx context.Context, index Indexer, embedder embed.Embedder, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	all, err := s.List(ctx, "")
	if err != nil {
		return err
	}
	if err := index.CreateCollection(ctx, Collection, embedder.Dimensions()); err != nil {
		return fmt.Errorf("creating collection %s: %w", Collection, err)
	}
	records := make([]vector.Record, 0, len(all))
	for _, m := range all {
		rec := Record(m)
		vec, err := embedder.Embed(ctx, rec.Text)
		if err != nil {
			return fmt.Errorf("embedding %s: %w", rec.ID, err)
		}
		rec.Vector = vec
		records = append(records, rec)
	}
	if err := index.Upsert(ctx, Collection, records); err != nil {
		return fmt.Errorf("indexing materials: %w", err)
	}
	log.Info("materials indexed", zap.Int("records", len(records)))
	return nil
}
