package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/runlog"
	"github.com/oncolens/tumorscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWatchFileRescoresOnWrite(t *testing.T) {
	path := writeTempFile(t, "sample.json", `{"worst area": 500}`)
	cfg := &contract.Config{InputFile: path}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan schema.PredictionReport, 16)
	type outcome struct {
		count int
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		count, err := WatchFile(ctx, cfg, func(r schema.PredictionReport, _ time.Duration) error {
			reports <- r
			return nil
		})
		done <- outcome{count, err}
	}()

	first := waitReport(t, reports)
	assert.Equal(t, 500.0, first.Measurements["worst area"])

	require.NoError(t, os.WriteFile(path, []byte(`{"worst area": 4000}`), 0o644))
	var second schema.PredictionReport
	for second.Measurements["worst area"] != 4000 {
		second = waitReport(t, reports)
	}
	assert.Greater(t, second.Result.MalignantProbability, first.Result.MalignantProbability)

	cancel()
	select {
	case o := <-done:
		require.NoError(t, o.err)
		assert.GreaterOrEqual(t, o.count, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchFileIgnoresOtherFiles(t *testing.T) {
	path := writeTempFile(t, "sample.json", `{"mean radius": 13}`)
	other := filepath.Join(filepath.Dir(path), "other.json")
	cfg := &contract.Config{InputFile: path}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan schema.PredictionReport, 16)
	done := make(chan int, 1)
	go func() {
		count, _ := WatchFile(ctx, cfg, func(r schema.PredictionReport, _ time.Duration) error {
			reports <- r
			return nil
		})
		done <- count
	}()

	waitReport(t, reports)
	require.NoError(t, os.WriteFile(other, []byte(`{"mean radius": 30}`), 0o644))

	select {
	case r := <-reports:
		t.Fatalf("unexpected re-score: %v", r.Measurements)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	assert.Equal(t, 1, <-done)
}

func TestWatchFileMissingDirectory(t *testing.T) {
	cfg := &contract.Config{InputFile: filepath.Join(t.TempDir(), "missing", "sample.json")}
	_, err := WatchFile(context.Background(), cfg, func(schema.PredictionReport, time.Duration) error { return nil })
	require.Error(t, err)
}

func TestWatchFileCallbackError(t *testing.T) {
	cfg := &contract.Config{InputFile: writeTempFile(t, "sample.json", `{}`)}
	count, err := WatchFile(context.Background(), cfg, func(schema.PredictionReport, time.Duration) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
	assert.Zero(t, count)
}

func TestExecuteWatchRecordsRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "watch.json")
	cfg := &contract.Config{
		InputFile:  writeTempFile(t, "sample.json", `{"mean radius": 13}`),
		Output:     schema.JSONOut,
		OutputFile: out,
		Precision:  2,
	}

	mockStore := &runlog.MockRunStore{}
	mockStore.On("BeginRun", "watch", mock.Anything, mock.Anything).Return(int64(5), "u", nil)
	mockStore.On("EndRun", int64(5), mock.Anything, 1).Return(nil)
	mockMgr := &runlog.MockRunManager{}
	mockMgr.On("GetRunStore").Return(mockStore)

	ctx, cancel := context.WithTimeout(WithSuppressHeader(context.Background()), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, ExecuteWatch(ctx, cfg, mockMgr))
	mockStore.AssertExpectations(t)

	_, err := os.Stat(out)
	require.NoError(t, err)
}

func TestExecuteWatchRequiresInput(t *testing.T) {
	err := ExecuteWatch(context.Background(), &contract.Config{}, nil)
	require.Error(t, err)
}

func waitReport(t *testing.T, reports <-chan schema.PredictionReport) schema.PredictionReport {
	t.Helper()
	select {
	case r := <-reports:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a prediction")
		return schema.PredictionReport{}
	}
}
