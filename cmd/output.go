package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/pagination"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", formatTable:
		return formatTable, nil
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output %q, expected one of table, json or yaml", s)
	}
}

// write renders v as json or yaml, or as the table built by render
func write(w io.Writer, format outputFormat, v any, render func(style table.Style) string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		_, err := fmt.Fprintln(w, render(tableStyle(w)))
		return err
	}
}

// tableStyle uses rounded borders on terminals and plain ascii otherwise
func tableStyle(w io.Writer) table.Style {
	f, ok := w.(*os.File)
	if !ok {
		return table.StyleDefault
	}
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return table.StyleRounded
	}
	return table.StyleDefault
}

func newTable(style table.Style, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.AppendHeader(header)
	return tw
}

func renderInfo(info *media.AnimeInfo, now time.Time, style table.Style) string {
	tw := newTable(style, table.Row{"Field", "Value"})
	tw.AppendRows([]table.Row{
		{"ID", info.ID},
		{"MAL ID", orDash(info.MalID)},
		{"Title", info.Title.Preferred()},
		{"Status", info.Status},
		{"Format", info.Format},
		{"Episodes", fmt.Sprintf("%d / %s", len(info.Episodes), orDash(info.TotalEpisodes))},
		{"Rating", orDash(info.Rating)},
		{"Popularity", humanize.Comma(int64(info.Popularity))},
		{"Genres", strings.Join(info.Genres, ", ")},
		{"Next Episode", nextAiring(info.NextAiringEpisode, now)},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})

	return tw.Render() + "\n" + renderEpisodes(info.Episodes, style)
}

func renderEpisodes(episodes []media.NormalizedEpisode, style table.Style) string {
	tw := newTable(style, table.Row{"#", "ID", "Title", "Filler"})
	for _, ep := range episodes {
		tw.AppendRow(table.Row{ep.Number, ep.ID, ep.Title, fillerLabel(ep.IsFiller)})
	}
	tw.AppendFooter(table.Row{"", "", "Total", len(episodes)})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	return tw.Render()
}

func renderSearch(page pagination.Page[media.CanonicalMedia], style table.Style) string {
	tw := newTable(style, table.Row{"ID", "Title", "Status", "Format", "Episodes"})
	for _, m := range page.Results {
		tw.AppendRow(table.Row{m.ID, m.Title.Preferred(), m.Status, m.Format, orDash(m.TotalEpisodes)})
	}
	tw.AppendFooter(table.Row{"", pageLabel(page.Meta), "", "", ""})
	return tw.Render()
}

func renderRecent(page pagination.Page[media.RecentEpisode], style table.Style) string {
	tw := newTable(style, table.Row{"ID", "Title", "#", "Episode ID"})
	for _, r := range page.Results {
		tw.AppendRow(table.Row{r.ID, r.Title.Preferred(), r.EpisodeNumber, r.EpisodeID})
	}
	tw.AppendFooter(table.Row{"", pageLabel(page.Meta), "", ""})
	return tw.Render()
}

func nextAiring(next *media.AiringEpisode, now time.Time) string {
	if next == nil {
		return "-"
	}
	airing := time.Unix(next.AiringAt, 0)
	return fmt.Sprintf("%d %s", next.Episode, humanize.RelTime(airing, now, "ago", "from now"))
}

func fillerLabel(filler *bool) string {
	if filler == nil {
		return ""
	}
	if *filler {
		return "yes"
	}
	return "no"
}

func pageLabel(m pagination.Meta) string {
	label := fmt.Sprintf("page %d of %s", m.Page, orDash(m.TotalPages))
	if m.HasNextPage {
		label += ", more available"
	}
	return label
}

func orDash(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
