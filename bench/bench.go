package bench

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/yggdrasil/featureflag"
	"github.com/aukilabs/yggdrasil/geometry"
	"github.com/aukilabs/yggdrasil/models"
	"github.com/aukilabs/yggdrasil/octree"
	"github.com/google/uuid"
)

const (
	defaultRounds    = 32
	defaultRoundStep = 64
)

// Options configures a construction benchmark run.
type Options struct {
	// Volume is the region bodies are generated in and trees are built
	// over. Defaults to the [0, 1024) cube.
	Volume geometry.Volume

	// Seed feeds the body generator. Two runs with the same seed
	// measure identical body sequences.
	Seed int64

	// Rounds is the number of trees to build; round i builds a tree of
	// i*RoundStep bodies.
	Rounds int

	// RoundStep is the body count increment between rounds.
	RoundStep int

	MaxDepth    int
	Relocate    bool
	CheckBounds bool

	// SendResult receives each round's result as it completes.
	SendResult func(context.Context, Result) error

	FeatureFlags featureflag.FeatureFlag
}

// Result describes one completed benchmark round.
type Result struct {
	RunID        string        `json:"run_id"`
	Round        int           `json:"round"`
	BodyCount    int           `json:"body_count"`
	Inserted     int           `json:"inserted"`
	InsertErrors int           `json:"insert_errors"`
	NodeCount    int           `json:"node_count"`
	Depth        int           `json:"depth"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Runner builds trees of growing body counts and reports how long
// each construction takes.
type Runner struct {
	opts  Options
	runID string
	last  *octree.Tree
	trees []*octree.Tree
}

func New(opts Options) *Runner {
	if opts.Volume == (geometry.Volume{}) {
		opts.Volume = geometry.Cube(0, 1024)
	}
	if opts.Rounds <= 0 {
		opts.Rounds = defaultRounds
	}
	if opts.RoundStep <= 0 {
		opts.RoundStep = defaultRoundStep
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = octree.DefaultMaxDepth
	}

	return &Runner{
		opts:  opts,
		runID: uuid.New().String(),
	}
}

// RunID identifies this runner's results across all rounds.
func (r *Runner) RunID() string {
	return r.runID
}

// LastTree returns the most recently built tree, or nil before the
// first round completes.
func (r *Runner) LastTree() *octree.Tree {
	return r.last
}

// Trees returns every round's tree when the KEEP_TREES feature flag
// is set.
func (r *Runner) Trees() []*octree.Tree {
	return r.trees
}

// Run executes every round in order, sending one result per round. It
// stops early when the context is cancelled. Failed insertions within
// a round are counted and reported, they do not abort the run.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	logs.WithTag("run_id", r.runID).
		WithTag("rounds", r.opts.Rounds).
		WithTag("round_step", r.opts.RoundStep).
		WithTag("seed", r.opts.Seed).
		Info("starting construction benchmark")

	gen := models.NewBodyGenerator(r.opts.Seed, r.opts.Volume)
	results := make([]Result, 0, r.opts.Rounds)

	for round := 0; round < r.opts.Rounds; round++ {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		res := r.runRound(round, gen)
		results = append(results, res)

		if r.opts.SendResult != nil {
			if err := r.opts.SendResult(ctx, res); err != nil {
				logs.WithTag("run_id", r.runID).
					WithTag("round", round).
					Warn(errors.New("sending benchmark result failed").Wrap(err))
			}
		}
	}

	return results, nil
}

func (r *Runner) runRound(round int, gen *models.BodyGenerator) Result {
	bodies := gen.Bodies(round * r.opts.RoundStep)

	opts := []octree.Option{octree.WithMaxDepth(r.opts.MaxDepth)}
	if r.opts.Relocate {
		opts = append(opts, octree.WithRelocation())
	}
	if r.opts.CheckBounds {
		opts = append(opts, octree.WithBoundsCheck())
	}

	var insertErrors int
	start := time.Now()

	tree := octree.New(r.opts.Volume, opts...)
	for _, b := range bodies {
		if err := tree.Insert(b); err != nil {
			insertErrors++
		}
	}
	elapsed := time.Since(start)

	r.opts.FeatureFlags.IfNotSet(featureflag.FlagDisableBuildMetrics, func() {
		instrumentBuild(r.mode(), start)
	})

	r.last = tree
	r.opts.FeatureFlags.IfSet(featureflag.FlagKeepTrees, func() {
		r.trees = append(r.trees, tree)
	})

	logs.WithTag("run_id", r.runID).
		WithTag("round", round).
		WithTag("body_count", len(bodies)).
		WithTag("insert_errors", insertErrors).
		WithTag("node_count", tree.NodeCount()).
		WithTag("depth", tree.Depth()).
		WithTag("elapsed", elapsed.String()).
		Debug("round completed")

	return Result{
		RunID:        r.runID,
		Round:        round,
		BodyCount:    len(bodies),
		Inserted:     tree.Len(),
		InsertErrors: insertErrors,
		NodeCount:    tree.NodeCount(),
		Depth:        tree.Depth(),
		Elapsed:      elapsed,
	}
}

func (r *Runner) mode() string {
	if r.opts.Relocate {
		return "relocate"
	}
	return "retain"
}
