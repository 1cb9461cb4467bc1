package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/errmsg"
)

type trackFlags struct {
	title, artist, album, genre, path string
	year                              int
}

func (f *trackFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "track title")
	cmd.Flags().StringVarP(&f.artist, "artist", "a", "", "artist")
	cmd.Flags().StringVar(&f.album, "album", "", "album")
	cmd.Flags().StringVarP(&f.genre, "genre", "g", "", "genre")
	cmd.Flags().IntVarP(&f.year, "year", "y", 0, "release year")
	cmd.Flags().StringVarP(&f.path, "file", "f", "", "audio file")
}

// update keeps only the flags given on the command line.
func (f *trackFlags) update(cmd *cobra.Command) catalog.TrackUpdate {
	var u catalog.TrackUpdate
	changed := cmd.Flags().Changed
	if changed("title") {
		u.Title = &f.title
	}
	if changed("artist") {
		u.Artist = &f.artist
	}
	if changed("album") {
		u.Album = &f.album
	}
	if changed("genre") {
		u.Genre = &f.genre
	}
	if changed("year") {
		u.Year = &f.year
	}
	if changed("file") {
		u.Path = &f.path
	}
	return u
}

func newTrackCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Manage the catalog",
	}
	cmd.AddCommand(
		newTrackAddCommand(e),
		newTrackEditCommand(e),
		newTrackRemoveCommand(e),
		newTrackListCommand(e),
		newTrackSearchCommand(e),
		newTrackImportCommand(e),
	)
	return cmd
}

func newTrackAddCommand(e *env) *cobra.Command {
	var f trackFlags
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a track to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &catalog.Track{
				ID:     args[0],
				Title:  f.title,
				Artist: f.artist,
				Album:  f.album,
				Genre:  f.genre,
				Year:   f.year,
				Path:   f.path,
			}
			if err := e.app.AddTrack(t); err != nil {
				return opErrorWith(errmsg.OpTrackAdd, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", t.ID, t)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTrackEditCommand(e *env) *cobra.Command {
	var f trackFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := e.app.EditTrack(args[0], f.update(cmd))
			if err != nil {
				return opErrorWith(errmsg.OpTrackEdit, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", t.ID, t)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTrackRemoveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a track from the catalog and every playlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := e.app.RemoveTrack(args[0])
			if err != nil {
				return opErrorWith(errmsg.OpTrackRemove, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", t.ID, t)
			return nil
		},
	}
}

func newTrackListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracks := e.app.ListTracks()
			renderTracks(cmd.OutOrStdout(), tracks, false)
			fmt.Fprintln(cmd.OutOrStdout(), countTracks(len(tracks)))
			return nil
		},
	}
}

func newTrackSearchCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "search <field> <value>",
		Short: "Find tracks whose field equals value",
		Long: `Find tracks whose field equals value exactly.
Fields: id, title, artist, album, genre, year, path.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := e.app.SearchTracks(args[0], args[1])
			if err != nil {
				return opError(errmsg.OpTrackSearch, err)
			}
			if len(found) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No track with %s %q\n", args[0], args[1])
				return nil
			}
			renderTracks(cmd.OutOrStdout(), found, false)
			fmt.Fprintln(cmd.OutOrStdout(), countTracks(len(found)))
			return nil
		},
	}
}

func newTrackImportCommand(e *env) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Add tracks from the tags of audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id != "" && len(args) > 1 {
				return fmt.Errorf("--id needs exactly one file, got %d", len(args))
			}
			imported := 0
			for _, path := range args {
				t, err := e.app.ImportFile(path, id)
				if err != nil {
					return opErrorWith(errmsg.OpImportFile, path, err)
				}
				imported++
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s)\n", t.ID, t)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", countTracks(imported))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "track id (default: generated)")
	return cmd
}
