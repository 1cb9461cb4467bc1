// Package cmd is the musicbox command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/musicbox/internal/app"
	"github.com/llehouerou/musicbox/internal/config"
	"github.com/llehouerou/musicbox/internal/errmsg"
	"github.com/llehouerou/musicbox/internal/logging"
	"github.com/llehouerou/musicbox/internal/player"
	"github.com/llehouerou/musicbox/internal/store"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// options are the seams used by tests.
type options struct {
	newPlayer func() player.Interface
	logOutput io.Writer
	// interactive is false when play must not start the terminal screen.
	interactive bool
}

func defaultOptions() options {
	return options{
		newPlayer:   func() player.Interface { return player.New() },
		logOutput:   os.Stderr,
		interactive: true,
	}
}

// env is the state shared by every command of one invocation.
type env struct {
	opts       options
	configPath string
	role       string

	cfg    *config.Config
	logger zerolog.Logger
	app    *app.App
}

// Execute runs the command line. This is called by main.main().
func Execute() {
	if err := run(defaultOptions(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one invocation and closes the library whatever the outcome.
func run(opts options, args []string, stdout, stderr io.Writer) error {
	root, e := newRootCommand(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := e.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCommand(opts options) (*cobra.Command, *env) {
	e := &env{opts: opts}

	root := &cobra.Command{
		Use:   "musicbox",
		Short: "Personal music library and player",
		Long: `musicbox keeps a catalog of songs and named playlists, and plays them
with a queue, a history and autoplay of similar tracks.

Editing the catalog requires --role admin.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/musicbox/config.toml)")
	root.PersistentFlags().StringVar(&e.role, "role", string(app.RoleUser), "role: admin or user")

	root.AddCommand(
		newTrackCommand(e),
		newPlaylistCommand(e),
		newPlayCommand(e),
	)
	return root, e
}

func (e *env) open(cmd *cobra.Command) error {
	role, err := app.ParseRole(e.role)
	if err != nil {
		return err
	}

	cfg, err := config.Load(e.configPath)
	if err != nil {
		return opError(errmsg.OpInitialize, err)
	}
	e.cfg = cfg
	e.logger = logging.NewWriter(e.opts.logOutput, cfg.GetLogLevel())

	path, err := cfg.GetDataFile()
	if err != nil {
		return opError(errmsg.OpInitialize, err)
	}
	st, err := store.Open(path)
	if err != nil {
		return opError(errmsg.OpStoreLoad, err)
	}

	e.app = app.New(cfg, role, app.Deps{
		Player:    e.opts.newPlayer(),
		Store:     st,
		Durations: player.DecodeDuration,
		Logger:    e.logger,
	})
	if err := e.app.LoadError(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errmsg.Format(errmsg.OpStoreLoad, err))
	}
	e.logger.Debug().Str("data_file", path).Str("role", string(role)).Msg("library opened")
	return nil
}

func (e *env) close() error {
	if e.app == nil {
		return nil
	}
	err := e.app.Close()
	e.app = nil
	return err
}

// cmdError keeps the cause of a failed command matchable with errors.Is
// while printing the user-facing message.
type cmdError struct {
	op      errmsg.Op
	context string
	err     error
}

func (c *cmdError) Error() string {
	return errmsg.FormatWith(c.op, c.context, c.err)
}

func (c *cmdError) Unwrap() error {
	return c.err
}

func opError(op errmsg.Op, err error) error {
	if err == nil {
		return nil
	}
	return &cmdError{op: op, err: err}
}

func opErrorWith(op errmsg.Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &cmdError{op: op, context: context, err: err}
}
