// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// state is the controller's position in the plan, search, merge,
// detect loop.
type state int

const (
	statePlanning state = iota
	stateSearching
	stateMerging
	stateDetecting
	stateDone
)

// Controller drives bounded gap-directed refinement. Depth 0 is the
// broad initial pass; each later depth replans only from the gaps the
// previous round left open. The loop ends when no gaps remain, when
// maxDepth is reached, or when the run's time budget expires.
type Controller struct {
	executor    *Executor
	categories  []Category
	collections []string
	maxDepth    int
	poolCap     int
	log         *zap.Logger
}

// runOutput is everything one controller run produced.
type runOutput struct {
	pool         *Pool
	gaps         []types.KnowledgeGap
	queries      []types.SearchQuery
	searchErrors []string
	attempted    int
	failed       int
	truncated    bool
}

func (c *Controller) run(ctx context.Context, problem string) (runOutput, error) {
	out := runOutput{pool: NewPool(c.poolCap)}

	var (
		depth   int
		hints   []string
		queries []types.SearchQuery
		batch   SearchOutput
	)
	st := statePlanning
	for st != stateDone {
		if ctx.Err() != nil {
			out.truncated = true
			c.log.Warn("time budget expired, returning partial results",
				zap.Int("depth", depth), zap.Int("findings", out.pool.Len()))
			break
		}
		switch st {
		case statePlanning:
			var err error
			queries, err = PlanQueries(problem, hints, depth)
			if err != nil {
				return out, err
			}
			out.queries = append(out.queries, queries...)
			c.log.Debug("planned queries",
				zap.Int("depth", depth), zap.Int("count", len(queries)))
			st = stateSearching

		case stateSearching:
			batch = c.executor.ExecuteSearches(ctx, queries, c.collections)
			out.searchErrors = append(out.searchErrors, batch.Errors...)
			out.attempted += batch.Attempted
			out.failed += batch.Failed
			st = stateMerging

		case stateMerging:
			out.pool.Merge(batch.Findings)
			st = stateDetecting

		case stateDetecting:
			out.gaps = DetectGaps(out.pool.All(), c.categories, depth)
			if len(out.gaps) == 0 || depth >= c.maxDepth {
				st = stateDone
				break
			}
			hints = hints[:0]
			for _, g := range out.gaps {
				hints = append(hints, g.Category)
			}
			depth++
			st = statePlanning
		}
	}
	return out, nil
}
