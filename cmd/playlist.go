package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/llehouerou/musicbox/internal/errmsg"
	"github.com/llehouerou/musicbox/internal/ui/render"
)

const playlistNameWidth = 40

func newPlaylistCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playlist",
		Aliases: []string{"pl"},
		Short:   "Manage playlists",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create an empty playlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.app.CreatePlaylist(args[0]); err != nil {
					return opErrorWith(errmsg.OpPlaylistCreate, args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created playlist %q\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <name>",
			Aliases: []string{"delete"},
			Short:   "Delete a playlist, keeping its tracks in the catalog",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.app.DeletePlaylist(args[0]); err != nil {
					return opErrorWith(errmsg.OpPlaylistDelete, args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted playlist %q\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <old> <new>",
			Short: "Rename a playlist",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.app.RenamePlaylist(args[0], args[1]); err != nil {
					return opErrorWith(errmsg.OpPlaylistRename, args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed playlist %q to %q\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name> <track-id>...",
			Short: "Append tracks to a playlist",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := args[0]
				for _, id := range args[1:] {
					if err := e.app.AddToPlaylist(name, id); err != nil {
						return opErrorWith(errmsg.OpPlaylistAddTrack, id, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %q\n", countTracks(len(args)-1), name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <name> <track-id>",
			Short: "Remove the first entry of a track from a playlist",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.app.RemoveFromPlaylist(args[0], args[1]); err != nil {
					return opErrorWith(errmsg.OpPlaylistRemove, args[1], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %q\n", args[1], args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "List the tracks of a playlist in order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tracks, err := e.app.PlaylistTracks(args[0])
				if err != nil {
					return opErrorWith(errmsg.OpPlaylistShow, args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.Sanitize(args[0]))
				renderTracks(cmd.OutOrStdout(), tracks, true)
				fmt.Fprintln(cmd.OutOrStdout(), countTracks(len(tracks)))
				return nil
			},
		},
		&cobra.Command{
			Use:     "ls",
			Aliases: []string{"list"},
			Short:   "List playlists",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Playlist", "Tracks"})
				for _, p := range e.app.ListPlaylists() {
					t.AppendRow(table.Row{render.Truncate(p.Name, playlistNameWidth), p.Tracks})
				}
				t.Render()
				return nil
			},
		},
	)
	return cmd
}
