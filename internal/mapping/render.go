package mapping

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/leapstack-labs/leapfrag/pkg/template"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent rendering when Renderer.Workers is unset.
const DefaultWorkers = 4

// Result is one rendered fragment.
type Result struct {
	Entity  string            `json:"entity"`
	Kind    core.FragmentKind `json:"kind"`
	Name    string            `json:"name,omitempty"`
	Table   string            `json:"table,omitempty"`
	Input   string            `json:"input"`
	Output  string            `json:"output"`
	Columns []string          `json:"columns"`
}

// Renderer renders the fragments of a mapping document.
type Renderer struct {
	// Dialect is used when the document does not name one.
	Dialect string
	// Types are extra type names on top of the dialect's.
	Types []string
	// Workers bounds concurrency; zero uses DefaultWorkers.
	Workers int
	Logger  *slog.Logger
}

type job struct {
	index  int
	result Result
	// columns is set for read fragments.
	columns []string
}

// RenderAll renders every fragment in doc. Results are ordered by entity as
// declared, then where, order_by, formulas and read fragments, names sorted.
func (r *Renderer) RenderAll(ctx context.Context, doc *Document) ([]Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	name := doc.Dialect
	if name == "" {
		name = r.Dialect
	}
	d, err := dialect.Lookup(name)
	if err != nil {
		return nil, err
	}
	types := dialect.TypesFor(d, slices.Concat(r.Types, doc.Types)...)

	jobs := plan(doc)
	results := make([]Result, len(jobs))

	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := j.result
			if res.Kind == core.KindRead {
				res.Output = template.RenderTransformerReadFragment(res.Input, j.columns...)
			} else {
				res.Output = template.Render(res.Input, d, types)
			}
			res.Columns = template.CollectColumnNames(res.Output)
			if res.Columns == nil {
				res.Columns = []string{}
			}
			results[j.index] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render mapping: %w", err)
	}

	logger.Debug("mapping rendered",
		slog.String("dialect", d.Name),
		slog.Int("entities", len(doc.Entities)),
		slog.Int("fragments", len(results)))
	return results, nil
}

func plan(doc *Document) []job {
	var jobs []job
	add := func(e Entity, kind core.FragmentKind, name, input string, columns []string) {
		jobs = append(jobs, job{
			index:   len(jobs),
			result:  Result{Entity: e.Name, Kind: kind, Name: name, Table: e.Table, Input: input},
			columns: columns,
		})
	}

	for _, e := range doc.Entities {
		if e.Where != "" {
			add(e, core.KindWhere, "", e.Where, nil)
		}
		if e.OrderBy != "" {
			add(e, core.KindOrderBy, "", e.OrderBy, nil)
		}
		for _, name := range sortedNames(e.Formulas) {
			add(e, core.KindFormula, name, e.Formulas[name], nil)
		}
		for _, name := range sortedNames(e.ReadFragments) {
			add(e, core.KindRead, name, e.ReadFragments[name], e.Columns)
		}
	}
	return jobs
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
