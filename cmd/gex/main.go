package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gex-tui/gex/internal/app"
	"github.com/gex-tui/gex/internal/config"
	"github.com/gex-tui/gex/internal/git"
	"github.com/gex-tui/gex/internal/screen"
	"github.com/gex-tui/gex/internal/watcher"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// ── Multi-instance resource tuning ──────────────────────────────
	//
	// A TUI spends most of its time waiting on I/O (git subprocesses,
	// fsnotify, terminal input); two OS threads cover the actual Go work.
	// When several gex instances share a machine, the default
	// GOMAXPROCS = NumCPU each just multiplies context-switch overhead.
	// An explicit GOMAXPROCS is respected.
	if os.Getenv("GOMAXPROCS") == "" {
		maxProcs := 2
		if n := runtime.NumCPU(); n < maxProcs {
			maxProcs = n
		}
		runtime.GOMAXPROCS(maxProcs)
	}

	// Keep RSS low; the outline rarely needs more than a few MB.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliFlags struct {
	path    string
	keys    string
	print   bool
	logFile string
}

func buildRootCmd() *cobra.Command {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "gex",
		Short: "A keyboard-first terminal interface for Git",
		Long: `gex shows your repository as a navigable outline — untracked files,
unstaged and staged changes down to individual hunks and lines, recent
commits, and stashes — and lets you stage, discard, commit, push, and
rebase without leaving the terminal.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApp(flags, screen.KindStatus, nil)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"gex %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.path, "path", "p", ".", "Path to the git repository")
	pf.StringVar(&flags.keys, "keys", "", `Key events to inject at startup, e.g. "jjs<enter>"`)
	pf.BoolVar(&flags.print, "print", false, "Render the screen once to stdout and exit")
	pf.StringVar(&flags.logFile, "log", "", "Append debug logs to this file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "log [git-log-args...]",
		Short: "Open the log screen",
		RunE: func(_ *cobra.Command, args []string) error {
			return runApp(flags, screen.KindLog, args)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "show <revision>",
		Short: "Open the show screen for a revision",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runApp(flags, screen.KindShow, args)
		},
	})
	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	return rootCmd
}

func runApp(flags *cliFlags, root screen.Kind, args []string) error {
	if flags.logFile != "" {
		f, err := tea.LogToFile(flags.logFile, "gex")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cliSvc, err := git.NewCLIService(flags.path)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}
	gitSvc := git.NewCachedService(cliSvc)

	model, err := app.New(gitSvc, cfg, app.Options{
		Root: root,
		Args: args,
		Keys: flags.keys,
	})
	if err != nil {
		return fmt.Errorf("building screen: %w", err)
	}

	if flags.print {
		fmt.Println(model.RenderOnce(80, 40))
		return nil
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Watch .git internals only; init failure degrades to manual refresh.
	if watchCh, stop, watchErr := watcher.Watch(cliSvc.RepoRoot(), cliSvc.GitDir(), 500*time.Millisecond); watchErr == nil {
		defer stop()
		go func() {
			for range watchCh {
				p.Send(app.RefreshMsg{})
			}
		}()
	} else {
		log.Printf("watcher disabled: %v", watchErr)
	}

	_, err = p.Run()
	return err
}

// buildVersionCmd creates the `gex version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("gex %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `gex completion` subcommand.
func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
