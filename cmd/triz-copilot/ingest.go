// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/triz-copilot/internal/embed"
	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/materials"
	"github.com/pdiddy/triz-copilot/internal/vector"
)

// ReferenceCollection holds user-supplied reference documents.
const ReferenceCollection = "reference-documents"

// minChunkRunes drops paragraph fragments too short to embed usefully.
const minChunkRunes = 80

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the vector index from the bundled knowledge",
	Long: `Ingest embeds the 40 inventive principles, the contradiction-matrix
resolutions, and the materials database into the vector index that
"solve" searches. Run it once after installation and again after
changing the embedding provider.

With --docs, markdown and text files under the given directory are
chunked by paragraph and indexed as reference documents.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("docs", "", "directory of .md/.txt reference documents to index")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	index, err := vector.NewStore(cfg.Vector)
	if err != nil {
		return err
	}
	defer index.Close()

	embedder, err := embed.New(cfg.Embedding)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), contextTimeout)
	defer cancel()

	base, err := knowledge.Load()
	if err != nil {
		return err
	}
	if err := base.Ingest(ctx, index, embedder, logger); err != nil {
		return fmt.Errorf("indexing knowledge base: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Indexed %d principles and %d matrix resolutions\n",
		len(base.Principles()), len(base.Entries()))

	matStore, err := materials.NewStore(cfg.Materials)
	if err != nil {
		return err
	}
	defer matStore.Close()

	if err := matStore.Ingest(ctx, index, embedder, logger); err != nil {
		return fmt.Errorf("indexing materials: %w", err)
	}

	docsDir, _ := cmd.Flags().GetString("docs")
	if docsDir != "" {
		n, err := ingestDocs(ctx, index, embedder, docsDir)
		if err != nil {
			return fmt.Errorf("indexing reference documents: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Indexed %d reference chunks from %s\n", n, docsDir)
	}

	fmt.Println("Ingest complete.")
	return nil
}

// ingestDocs chunks every .md and .txt file under dir by paragraph and
// indexes the chunks into the reference-documents collection.
func ingestDocs(ctx context.Context, index *vector.Store, embedder embed.Embedder, dir string) (int, error) {
	if err := index.CreateCollection(ctx, ReferenceCollection, embedder.Dimensions()); err != nil {
		return 0, err
	}

	var records []vector.Record
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), ext)
		for i, chunk := range chunkParagraphs(string(raw)) {
			vec, err := embedder.Embed(ctx, chunk)
			if err != nil {
				logger.Warn("skipping chunk", zap.String("file", path), zap.Error(err))
				continue
			}
			records = append(records, vector.Record{
				ID:     fmt.Sprintf("%s-%d", name, i),
				Text:   chunk,
				Vector: vec,
				Metadata: map[string]string{
					"source": name,
				},
			})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := index.Upsert(ctx, ReferenceCollection, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// chunkParagraphs splits text on blank lines, merging fragments shorter
// than minChunkRunes into the following paragraph.
func chunkParagraphs(text string) []string {
	var chunks []string
	var pending string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if pending != "" {
			para = pending + "\n\n" + para
			pending = ""
		}
		if len([]rune(para)) < minChunkRunes {
			pending = para
			continue
		}
		chunks = append(chunks, para)
	}
	if pending != "" {
		chunks = append(chunks, pending)
	}
	return chunks
}
