// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/triz-copilot/internal/embed"
	"github.com/pdiddy/triz-copilot/internal/vector"
)

// Collection names the knowledge base populates.
const (
	PrinciplesCollection  = "principles"
	ResolutionsCollection = "historical-resolutions"
)

// Indexer is the slice of the vector store ingestion needs.
type Indexer interface {
	CreateCollection(ctx context.Context, name string, dims int) error
	Upsert(ctx context.Context, collection string, records []vector.Record) error
}

// PrincipleRecords renders each principle as one indexable chunk. The
// text leads with "Name:" so search excerpts identify the principle.
func (b *Base) PrincipleRecords() []vector.Record {
	principles := b.Principles()
	records := make([]vector.Record, 0, len(principles))
	for _, p := range principles {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %s", p.Name, p.Description)
		for _, sub := range p.SubPrinciples {
			fmt.Fprintf(&sb, " %s.", sub)
		}
		if len(p.Examples) > 0 {
			fmt.Fprintf(&sb, " Examples: %s.", strings.Join(p.Examples, "; "))
		}
		metadata := map[string]string{
			"source":         "principles-library",
			"principle_id":   strconv.Itoa(p.ID),
			"principle_name": p.Name,
		}
		if len(p.Domains) > 0 {
			metadata["domain"] = p.Domains[0]
		}
		records = append(records, vector.Record{
			ID:       fmt.Sprintf("principle-%d", p.ID),
			Text:     sb.String(),
			Metadata: metadata,
		})
	}
	return records
}

// ResolutionRecords renders each matrix cell as a historical-resolution
// chunk describing which principles resolved the trade-off.
func (b *Base) ResolutionRecords() []vector.Record {
	entries := b.Entries()
	records := make([]vector.Record, 0, len(entries))
	for _, e := range entries {
		improving := b.parameters[e.Improving]
		worsening := b.parameters[e.Worsening]
		names := make([]string, 0, len(e.Principles))
		for _, id := range e.Principles {
			if p, ok := b.principles[id]; ok {
				names = append(names, p.Name)
			}
		}
		text := fmt.Sprintf(
			"Improving %s while %s worsens was historically resolved by: %s. Applied in %d recorded cases.",
			strings.ToLower(improving.Name), strings.ToLower(worsening.Name),
			strings.Join(names, ", "), e.Applications)
		records = append(records, vector.Record{
			ID:   fmt.Sprintf("matrix-%d-%d", e.Improving, e.Worsening),
			Text: text,
			Metadata: map[string]string{
				"source":       "contradiction-matrix",
				"principle_id": strconv.Itoa(e.Principles[0]),
				"improving":    strconv.Itoa(e.Improving),
				"worsening":    strconv.Itoa(e.Worsening),
			},
		})
	}
	return records
}

// Ingest embeds and indexes the whole knowledge base. Re-running it is
// safe: records upsert by stable id.
func (b *Base) Ingest(ctx context.Context, index Indexer, embedder embed.Embedder, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	batches := []struct {
		collection string
		records    []vector.Record
	}{
		{PrinciplesCollection, b.PrincipleRecords()},
		{ResolutionsCollection, b.ResolutionRecords()},
	}
	for _, batch := range batches {
		if err := index.CreateCollection(ctx, batch.collection, embedder.Dimensions()); err != nil {
			return fmt.Errorf("creating collection %s: %w", batch.collection, err)
		}
		for i := range batch.records {
			vec, err := embedder.Embed(ctx, batch.records[i].Text)
			if err != nil {
				return fmt.Errorf("embedding %s: %w", batch.records[i].ID, err)
			}
			batch.records[i].Vector = vec
		}
		if err := index.Upsert(ctx, batch.collection, batch.records); err != nil {
			return fmt.Errorf("indexing %s: %w", batch.collection, err)
		}
		log.Info("knowledge collection indexed",
			zap.String("collection", batch.collection),
			zap.Int("records", len(batch.records)))
	}
	return nil
}
