package bench

import (
	"context"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/yggdrasil/featureflag"
	"github.com/aukilabs/yggdrasil/geometry"
	"github.com/aukilabs/yggdrasil/octree"
	"github.com/stretchr/testify/require"
)

func TestRunnerDefaults(t *testing.T) {
	r := New(Options{})
	require.Equal(t, geometry.Cube(0, 1024), r.opts.Volume)
	require.Equal(t, defaultRounds, r.opts.Rounds)
	require.Equal(t, defaultRoundStep, r.opts.RoundStep)
	require.Equal(t, octree.DefaultMaxDepth, r.opts.MaxDepth)
	require.NotEmpty(t, r.RunID())
}

func TestRunnerRun(t *testing.T) {
	t.Run("rounds follow the body count schedule", func(t *testing.T) {
		r := New(Options{
			Seed:      1313131313,
			Rounds:    4,
			RoundStep: 8,
		})

		results, err := r.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 4)

		for i, res := range results {
			require.Equal(t, r.RunID(), res.RunID)
			require.Equal(t, i, res.Round)
			require.Equal(t, i*8, res.BodyCount)
			require.Equal(t, res.BodyCount, res.Inserted)
			require.Zero(t, res.InsertErrors)
			require.NotZero(t, res.NodeCount)
		}
	})

	t.Run("results reach the send hook", func(t *testing.T) {
		var sent []Result
		r := New(Options{
			Seed:      42,
			Rounds:    3,
			RoundStep: 4,
			SendResult: func(ctx context.Context, res Result) error {
				sent = append(sent, res)
				return nil
			},
		})

		results, err := r.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, results, sent)
	})

	t.Run("send failures do not abort the run", func(t *testing.T) {
		r := New(Options{
			Rounds:    3,
			RoundStep: 4,
			SendResult: func(ctx context.Context, res Result) error {
				return errors.New("send failed")
			},
		})

		results, err := r.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 3)
	})

	t.Run("cancellation stops the run between rounds", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := New(Options{Rounds: 8, RoundStep: 4})
		results, err := r.Run(ctx)
		require.Equal(t, context.Canceled, err)
		require.Empty(t, results)
	})

	t.Run("insert failures are counted not fatal", func(t *testing.T) {
		// A depth 1 tree stores at most 9 bodies, one in the root and
		// one per child. 16 random bodies cannot all fit.
		r := New(Options{
			Seed:      1313131313,
			Rounds:    2,
			RoundStep: 16,
			MaxDepth:  1,
		})

		results, err := r.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 2)

		res := results[1]
		require.Equal(t, 16, res.BodyCount)
		require.LessOrEqual(t, res.Inserted, 9)
		require.GreaterOrEqual(t, res.InsertErrors, 7)
		require.Equal(t, res.BodyCount, res.Inserted+res.InsertErrors)
	})
}

func TestRunnerTrees(t *testing.T) {
	t.Run("trees are dropped by default", func(t *testing.T) {
		r := New(Options{Rounds: 3, RoundStep: 4})

		_, err := r.Run(context.Background())
		require.NoError(t, err)
		require.Empty(t, r.Trees())
		require.NotNil(t, r.LastTree())
	})

	t.Run("trees are kept when the flag is set", func(t *testing.T) {
		r := New(Options{
			Rounds:       3,
			RoundStep:    4,
			FeatureFlags: featureflag.New([]string{string(featureflag.FlagKeepTrees)}),
		})

		_, err := r.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, r.Trees(), 3)
		require.Equal(t, r.LastTree(), r.Trees()[2])
	})
}
