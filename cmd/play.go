package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/musicbox/internal/errmsg"
	"github.com/llehouerou/musicbox/internal/playback"
	"github.com/llehouerou/musicbox/internal/stderr"
	"github.com/llehouerou/musicbox/internal/ui/nowplaying"
)

type playFlags struct {
	playlist string
	queue    []string
	headless bool
}

func newPlayCommand(e *env) *cobra.Command {
	var f playFlags
	cmd := &cobra.Command{
		Use:   "play [track-id]",
		Short: "Play a track, a playlist or the queue",
		Long: `Play a catalog track, a playlist from its first entry, or the tracks
given with --queue in order. When the current track ends the next one is
taken from the queue, then from the playlist, then from similar tracks
while autoplay is on.

Without --headless the now-playing screen takes over the terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := e.startPlayback(ctx, args, f); err != nil {
				return err
			}
			switch {
			case f.headless:
				return e.runHeadless(ctx, cmd.OutOrStdout())
			case e.opts.interactive:
				return e.runScreen(ctx)
			default:
				snap := e.app.Snapshot()
				if snap.Current != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Playing %s\n", snap.Current)
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&f.playlist, "playlist", "l", "", "play this playlist")
	cmd.Flags().StringSliceVarP(&f.queue, "queue", "q", nil, "track ids to enqueue")
	cmd.Flags().BoolVar(&f.headless, "headless", false, "print track changes instead of the screen")
	cmd.MarkFlagsMutuallyExclusive("playlist", "queue")
	return cmd
}

func (e *env) startPlayback(ctx context.Context, args []string, f playFlags) error {
	for _, id := range f.queue {
		if err := e.app.Enqueue(id); err != nil {
			return opErrorWith(errmsg.OpQueueAdd, id, err)
		}
	}

	var err error
	switch {
	case len(args) == 1:
		err = e.app.PlayTrack(ctx, args[0])
	case f.playlist != "":
		err = e.app.PlayPlaylist(ctx, f.playlist)
	default:
		err = e.app.Advance(ctx, playback.Forward, playback.SourceQueue)
		if errors.Is(err, playback.ErrNoNext) {
			return errors.New("nothing to play: give a track id, --playlist or --queue")
		}
	}
	return opError(errmsg.OpPlaybackStart, err)
}

// runHeadless follows the session until interrupted.
func (e *env) runHeadless(ctx context.Context, w io.Writer) error {
	sub := e.app.Subscribe()
	go e.app.Run(ctx)

	if snap := e.app.Snapshot(); snap.Current != nil {
		fmt.Fprintf(w, "Playing %s\n", snap.Current)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.Done:
			return nil
		case ev := <-sub.TrackChanged:
			if ev.Current != nil {
				fmt.Fprintf(w, "Playing %s (%s)\n", ev.Current, ev.Source)
			}
		case ev := <-sub.Autoplay:
			if ev.Err != nil {
				fmt.Fprintln(w, errmsg.Format(errmsg.OpAutoplay, ev.Err))
			}
		case ev := <-sub.Error:
			fmt.Fprintln(w, errmsg.FormatWith(errmsg.OpAutoplay, ev.Path, ev.Err))
		case <-sub.StateChanged:
		case <-sub.PositionChanged:
		}
	}
}

// runScreen shows the now-playing screen. Output written to stderr while
// it runs is shown in its status line.
func (e *env) runScreen(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lines <-chan string
	capture, err := stderr.Start()
	if err == nil {
		defer capture.Stop()
		lines = capture.Lines()
	} else {
		e.logger.Warn().Err(err).Msg("stderr capture unavailable")
	}

	sub := e.app.Subscribe()
	go e.app.Run(ctx)

	model := nowplaying.New(ctx, e.app, sub, lines)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("now playing screen: %w", err)
	}
	return nil
}
