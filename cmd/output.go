package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/ui/render"
)

const (
	titleWidth  = 32
	artistWidth = 24
	albumWidth  = 24
	genreWidth  = 14
)

// renderTracks writes tracks as a table. numbered prefixes each row with
// its 1-based position.
func renderTracks(w io.Writer, tracks []*catalog.Track, numbered bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{}
	if numbered {
		header = append(header, "#")
	}
	header = append(header, "ID", "Title", "Artist", "Album", "Genre", "Year", "File")
	t.AppendHeader(header)

	for i, tr := range tracks {
		row := table.Row{}
		if numbered {
			row = append(row, i+1)
		}
		year := "-"
		if tr.Year > 0 {
			year = fmt.Sprint(tr.Year)
		}
		file := "no"
		if tr.Playable() {
			file = "yes"
		}
		row = append(row,
			tr.ID,
			render.Truncate(render.OrDash(tr.Title), titleWidth),
			render.Truncate(render.OrDash(tr.Artist), artistWidth),
			render.Truncate(render.OrDash(tr.Album), albumWidth),
			render.Truncate(render.OrDash(tr.Genre), genreWidth),
			year,
			file,
		)
		t.AppendRow(row)
	}
	t.Render()
}

// countTracks renders "1,234 tracks".
func countTracks(n int) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, "track", "")
}
