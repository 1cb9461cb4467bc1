package nowplaying

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/keymap"
	"github.com/llehouerou/musicbox/internal/playback"
	"github.com/llehouerou/musicbox/internal/ui/render"
	"github.com/llehouerou/musicbox/internal/ui/styles"
)

const maxListed = 8

// View renders the screen.
func (m Model) View() string {
	width := max(m.width, 20)
	t := styles.T()

	sections := []string{
		m.renderHeader(width),
		m.renderLists(width),
		m.renderStatus(width),
	}
	if m.showHelp {
		sections = append(sections, renderHelp())
	} else {
		sections = append(sections, t.S().Subtle.Render("? help  q quit"))
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader(width int) string {
	t := styles.T()
	s := t.S()
	inner := width - 4

	if m.snap.Current == nil {
		body := s.Muted.Render("Nothing playing")
		return styles.Panel(false).Width(inner + 2).Render(body + "\n" + m.renderFlags())
	}

	cur := m.snap.Current
	title := styles.Gradient(render.Truncate(cur.Title, inner), t.Accent, t.AccentAlt, true)

	var info []string
	for _, part := range []string{cur.Artist, cur.Album} {
		if strings.TrimSpace(part) != "" {
			info = append(info, part)
		}
	}
	if cur.Year > 0 {
		info = append(info, fmt.Sprint(cur.Year))
	}
	details := s.Muted.Render(render.Truncate(strings.Join(info, " · "), inner))

	bar := render.ProgressBar(
		m.snap.Elapsed, m.snap.Duration, m.snap.DurationKnown,
		inner, m.snap.State == playback.StatePlaying,
	)
	barStyle := s.Playing
	if m.snap.State != playback.StatePlaying {
		barStyle = s.Paused
	}

	lines := []string{title, details, barStyle.Render(bar), m.renderFlags()}
	return styles.Panel(true).Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderFlags() string {
	s := styles.T().S()

	autoplay := s.Subtle.Render("autoplay off")
	if m.snap.Autoplay {
		autoplay = s.Success.Render("autoplay on")
	}
	source := s.Subtle.Render("catalog")
	if m.snap.PlaylistMode {
		source = s.Base.Render("playlist: " + render.Sanitize(m.snap.Playlist))
	}
	return source + s.Subtle.Render("  │  ") + autoplay
}

func (m Model) renderLists(width int) string {
	half := max(width/2-4, 10)

	queue := renderList("Up next", m.snap.Queue, half)
	history := renderList("Played", m.snap.History, half)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Panel(len(m.snap.Queue) > 0).Width(half+2).Render(queue),
		styles.Panel(false).Width(half+2).Render(history),
	)
}

func renderList(title string, tracks []*catalog.Track, width int) string {
	s := styles.T().S()

	lines := []string{s.Title.Render(render.Row(title, fmt.Sprint(len(tracks)), width))}
	if len(tracks) == 0 {
		lines = append(lines, s.Subtle.Render("empty"))
	}
	for i, tr := range tracks {
		if i == maxListed {
			lines = append(lines, s.Subtle.Render(fmt.Sprintf("… %d more", len(tracks)-maxListed)))
			break
		}
		lines = append(lines, render.Fit(tr.String(), width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus(width int) string {
	if m.status == "" {
		return ""
	}
	s := styles.T().S()
	text := render.Truncate(m.status, width)
	switch m.statusKind {
	case statusError:
		return s.Error.Render(text)
	case statusWarning:
		return s.Warning.Render(text)
	default:
		return s.Muted.Render(text)
	}
}

func renderHelp() string {
	s := styles.T().S()
	var lines []string
	for _, ctx := range []string{"playback", "global"} {
		for _, b := range keymap.ByContext(ctx) {
			keys := strings.Join(b.Keys, "/")
			if keys == " " {
				keys = "space"
			}
			lines = append(lines, s.Base.Render(render.Pad(keys, 14))+s.Muted.Render(b.Description))
		}
	}
	return strings.Join(lines, "\n")
}
