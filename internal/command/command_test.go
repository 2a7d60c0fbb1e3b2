package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// drain pulls runner messages until the given command's DoneMsg arrives
// or the timeout hits.
func drain(t *testing.T, r *Runner, id int, timeout time.Duration) DoneMsg {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case msg := <-r.msgs:
			if done, ok := msg.(DoneMsg); ok && done.ID == id {
				return done
			}
		case <-deadline:
			t.Fatalf("no DoneMsg for command %d within %v", id, timeout)
		}
	}
}

func TestSpawnCapturesOutputAndExit(t *testing.T) {
	r := NewRunner(t.TempDir())
	pc, err := r.Spawn([]string{"sh", "-c", "echo out; echo err >&2"})
	require.NoError(t, err)

	done := drain(t, r, pc.ID, 5*time.Second)
	require.Equal(t, 0, done.Code)
	require.NoError(t, done.Err)

	st, code := pc.State()
	require.Equal(t, StatusSucceeded, st)
	require.Equal(t, 0, code)
	require.Contains(t, pc.Output(), "out")
	require.Contains(t, pc.Output(), "err")
}

func TestSpawnReportsFailure(t *testing.T) {
	r := NewRunner(t.TempDir())
	pc, err := r.Spawn([]string{"sh", "-c", "echo boom >&2; exit 3"})
	require.NoError(t, err)

	done := drain(t, r, pc.ID, 5*time.Second)
	require.Equal(t, 3, done.Code)

	st, code := pc.State()
	require.Equal(t, StatusFailed, st)
	require.Equal(t, 3, code)
	require.Contains(t, pc.Output(), "boom")
}

func TestSpawnDoesNotBlock(t *testing.T) {
	r := NewRunner(t.TempDir())
	start := time.Now()
	pc, err := r.Spawn([]string{"sh", "-c", "sleep 2"})
	require.NoError(t, err)
	require.Less(t, time.Since(start), 500*time.Millisecond)

	st, _ := pc.State()
	require.Equal(t, StatusRunning, st)
	require.Equal(t, 1, r.Running())

	r.KillAll()
	drain(t, r, pc.ID, 5*time.Second)
	require.Equal(t, 0, r.Running())
}

func TestConcurrentCommandsFinishIndependently(t *testing.T) {
	r := NewRunner(t.TempDir())

	slow, err := r.Spawn([]string{"sh", "-c", "sleep 1; echo slow"})
	require.NoError(t, err)
	fast, err := r.Spawn([]string{"sh", "-c", "echo fast"})
	require.NoError(t, err)

	// The command launched second completes first.
	first := drain(t, r, fast.ID, 5*time.Second)
	require.Equal(t, 0, first.Code)
	slowSt, _ := slow.State()
	require.Equal(t, StatusRunning, slowSt)

	second := drain(t, r, slow.ID, 5*time.Second)
	require.Equal(t, 0, second.Code)
	require.Contains(t, slow.Output(), "slow")
	require.Contains(t, fast.Output(), "fast")
}

func TestSpawnEmptyArgv(t *testing.T) {
	r := NewRunner(t.TempDir())
	_, err := r.Spawn(nil)
	require.Error(t, err)
}
