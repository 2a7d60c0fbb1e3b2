// Package command runs git subprocesses without blocking the event loop.
// Each spawned command gets a PendingCommand record whose output streams
// in as messages; any number may run at once, and their completions are
// handled in whatever order they finish.
package command

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Status is a pending command's lifecycle state.
type Status int

const (
	StatusRunning Status = iota
	StatusSucceeded
	StatusFailed
)

// PendingCommand is the record of one spawned command. Output accrues
// from two reader goroutines; all access goes through the mutex.
type PendingCommand struct {
	ID        int
	Argv      []string
	StartedAt time.Time

	mu     sync.Mutex
	out    bytes.Buffer
	status Status
	code   int
	err    error
}

// Display is the command line shown in the popup title.
func (p *PendingCommand) Display() string {
	return strings.Join(p.Argv, " ")
}

// Output returns the combined stdout+stderr captured so far.
func (p *PendingCommand) Output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.String()
}

// Status returns the lifecycle state and exit code.
func (p *PendingCommand) State() (Status, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, p.code
}

func (p *PendingCommand) append(chunk []byte) {
	p.mu.Lock()
	p.out.Write(chunk)
	p.mu.Unlock()
}

func (p *PendingCommand) finish(code int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.code = code
	p.err = err
	if code == 0 && err == nil {
		p.status = StatusSucceeded
	} else {
		p.status = StatusFailed
	}
}

// OutputMsg reports that command ID received more output.
type OutputMsg struct{ ID int }

// DoneMsg reports that command ID exited.
type DoneMsg struct {
	ID   int
	Code int
	Err  error
}

// Runner spawns commands in a working directory and forwards their
// progress as bubbletea messages on a single channel.
type Runner struct {
	dir string

	mu     sync.Mutex
	nextID int
	procs  map[int]*exec.Cmd

	msgs chan tea.Msg
}

// NewRunner makes a runner for commands executed in dir.
func NewRunner(dir string) *Runner {
	return &Runner{
		dir:   dir,
		procs: make(map[int]*exec.Cmd),
		msgs:  make(chan tea.Msg, 64),
	}
}

// Listen returns a tea.Cmd that delivers the next runner message. The
// model must re-issue it after every delivery to keep the stream flowing.
func (r *Runner) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-r.msgs
	}
}

// Spawn starts argv in the runner's directory and returns its record
// immediately. Stdout and stderr are each drained by a goroutine; chunks
// arrive as OutputMsg and the exit as DoneMsg, in completion order across
// all running commands.
func (r *Runner) Spawn(argv []string) (*PendingCommand, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("spawn: empty argv")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", argv[0], err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", argv[0], err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", argv[0], err)
	}

	r.mu.Lock()
	r.nextID++
	pc := &PendingCommand{ID: r.nextID, Argv: argv, StartedAt: time.Now()}
	r.procs[pc.ID] = cmd
	r.mu.Unlock()

	var drained sync.WaitGroup
	for _, pipe := range []interface{ Read([]byte) (int, error) }{stdout, stderr} {
		drained.Add(1)
		go func(rd interface{ Read([]byte) (int, error) }) {
			defer drained.Done()
			buf := make([]byte, 4096)
			for {
				n, err := rd.Read(buf)
				if n > 0 {
					pc.append(buf[:n])
					r.msgs <- OutputMsg{ID: pc.ID}
				}
				if err != nil {
					return
				}
			}
		}(pipe)
	}

	go func() {
		drained.Wait()
		err := cmd.Wait()
		code := 0
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
			err = nil
		}
		pc.finish(code, err)

		r.mu.Lock()
		delete(r.procs, pc.ID)
		r.mu.Unlock()

		r.msgs <- DoneMsg{ID: pc.ID, Code: code, Err: err}
	}()

	return pc, nil
}

// Running returns how many commands are still executing.
func (r *Runner) Running() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.procs)
}

// KillAll terminates every still-running command. Called on quit so no
// subprocess outlives the program.
func (r *Runner) KillAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cmd := range r.procs {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}
}
