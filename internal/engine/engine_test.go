package engine

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/campath/internal/trajectory"
)

func testIntrinsic() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		100, 0, 64,
		0, 100, 36,
		0, 0, 1,
	})
}

func allJobs(nframe int) []Job {
	names := trajectory.Names()
	jobs := make([]Job, len(names))
	for i, name := range names {
		jobs[i] = Job{
			Trajectory: name,
			NFrame:     nframe,
			Elevation:  10,
			Radius:     2,
			Focal:      1.0,
			Intrinsic:  testIntrinsic(),
		}
	}
	return jobs
}

func TestBatchRunAll(t *testing.T) {
	b := &Batch{Log: zap.NewNop().Sugar(), Workers: 4}

	jobs := allJobs(13)
	results, err := b.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, res := range results {
		assert.Equal(t, jobs[i].Trajectory, res.Job.Trajectory, "result %d out of order", i)
		require.NotNil(t, res.Path, "result %d has no path", i)
		assert.Len(t, res.Path.W2Cs, 13)
		assert.Len(t, res.Path.C2Ws, 13)
		assert.Len(t, res.Path.Intrinsics, 13)
		assert.Empty(t, res.ScenarioFile)
	}
}

func TestBatchWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	b := &Batch{Log: zap.NewNop().Sugar(), Workers: 2, OutDir: dir, Preview: true, FPS: 16}

	results, err := b.Run(context.Background(), []Job{
		{Trajectory: "orbit", NFrame: 9, Elevation: 15, Radius: 2, Focal: 1.0, Intrinsic: testIntrinsic()},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NotEmpty(t, results[0].ScenarioFile)
	_, err = os.Stat(results[0].ScenarioFile)
	assert.NoError(t, err, "scenario file missing")

	require.NotEmpty(t, results[0].PreviewFile)
	_, err = os.Stat(results[0].PreviewFile)
	assert.NoError(t, err, "preview file missing")
}

func TestBatchUnknownTrajectory(t *testing.T) {
	b := &Batch{Log: zap.NewNop().Sugar(), Workers: 2}

	jobs := allJobs(5)
	jobs = append(jobs, Job{Trajectory: "spiral", NFrame: 5, Radius: 1, Focal: 1, Intrinsic: testIntrinsic()})

	_, err := b.Run(context.Background(), jobs)
	require.ErrorIs(t, err, trajectory.ErrUnknownTrajectory)
}

func TestBatchCanceledContext(t *testing.T) {
	b := &Batch{Log: zap.NewNop().Sugar(), Workers: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx, allJobs(5))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBatchEmpty(t *testing.T) {
	b := &Batch{Log: zap.NewNop().Sugar(), Workers: 1}
	_, err := b.Run(context.Background(), nil)
	require.Error(t, err)
}
