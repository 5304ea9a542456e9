package reports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/filestorages"
	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/shared/metrics"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
)

const usageKeyFormat = "usage_%04d%02d.txt"

// textStyles are bound to the output so a file or pipe gets plain text.
type textStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	grouped lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	lr := lipgloss.NewRenderer(w)
	return textStyles{
		title:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section: lr.NewStyle().Bold(true).Underline(true),
		grouped: lr.NewStyle().Bold(true),
	}
}

// TextOptions sets the title and the length of each top list. Zero omits a list.
type TextOptions struct {
	Title        string
	TopSites     int
	TopURLs      int
	TopEntry     int
	TopExit      int
	TopReferrers int
	TopSearch    int
	TopAgents    int
	TopUsers     int
}

type textRenderer struct {
	w      io.Writer
	opts   TextOptions
	styles textStyles
}

// NewTextRenderer returns a Renderer that writes a plain text usage report for each month to w.
func NewTextRenderer(w io.Writer, opts TextOptions) Renderer {
	return &textRenderer{w: w, opts: opts, styles: newTextStyles(w)}
}

type textFileRenderer struct {
	storage filestorages.FileStorage
	opts    TextOptions
}

// NewTextFileRenderer returns a Renderer that stores each month's text report as usage_YYYYMM.txt.
func NewTextFileRenderer(storage filestorages.FileStorage, opts TextOptions) Renderer {
	return &textFileRenderer{storage: storage, opts: opts}
}

func (r *textFileRenderer) RenderMonth(ctx context.Context, view *MonthView) error {
	var buf bytes.Buffer
	if err := NewTextRenderer(&buf, r.opts).RenderMonth(ctx, view); err != nil {
		return err
	}
	key := fmt.Sprintf(usageKeyFormat, view.Year, view.Month)
	if _, err := r.storage.Put(ctx, key, &buf, filestorages.PutOptions{AllowOverwrite: true}); err != nil {
		return errInternalDumpFailed(key, err)
	}
	return nil
}

func (r *textRenderer) RenderMonth(ctx context.Context, view *MonthView) error {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldComponent, "report").Logger()

	if err := r.render(view); err != nil {
		svcErr := errInternalRenderFailed(err)
		metricMonthsRenderedTotal.WithLabelValues("text", svcErr.Code).Inc()
		logger.Error().Err(svcErr).Msg("failed to render month")
		return svcErr
	}
	metricMonthsRenderedTotal.WithLabelValues("text", metrics.ValueNoError).Inc()
	logger.Debug().Int("year", view.Year).Int("month", view.Month).Msg("month rendered")
	return nil
}

func (r *textRenderer) render(view *MonthView) error {
	title := fmt.Sprintf("Usage statistics for %s %d", time.Month(view.Month), view.Year)
	if r.opts.Title != "" {
		title = r.opts.Title + ": " + title
	}
	if _, err := fmt.Fprintf(r.w, "%s\n", r.styles.title.Render(title)); err != nil {
		return err
	}

	sections := []func(*MonthView) error{
		r.summary,
		r.daily,
		r.hourly,
		r.responses,
		r.topSites,
		r.topURLs,
		r.entryExit,
		r.topReferrers,
		r.topSearch,
		r.topAgents,
		r.topUsers,
	}
	for _, section := range sections {
		if err := section(view); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) section(name string) error {
	_, err := fmt.Fprintf(r.w, "\n%s\n", r.styles.section.Render(name))
	return err
}

func (r *textRenderer) table(header []string, rows [][]string) {
	t := tablewriter.NewWriter(r.w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.AppendBulk(rows)
	t.Render()
}

func (r *textRenderer) summary(view *MonthView) error {
	if err := r.section("Monthly Summary"); err != nil {
		return err
	}
	days := uint64(1)
	if view.LastDay >= view.FirstDay && view.FirstDay > 0 {
		days = uint64(view.LastDay - view.FirstDay + 1)
	}
	t := view.Totals
	r.table([]string{"Metric", "Total", "Avg/day"}, [][]string{
		{"Hits", u(t.Hits), u(t.Hits / days)},
		{"Files", u(t.Files), u(t.Files / days)},
		{"Pages", u(t.Pages), u(t.Pages / days)},
		{"Visits", u(t.Visits), u(t.Visits / days)},
		{"KBytes", kb(t.Xfer), kb(t.Xfer / days)},
		{"Sites", u(t.Sites), ""},
		{"URLs", u(t.URLs), ""},
		{"Referrers", u(t.Referrers), ""},
		{"User Agents", u(t.Agents), ""},
		{"Usernames", u(t.Users), ""},
		{"Max hits/hour", u(view.MaxHourHits), ""},
	})
	return nil
}

func (r *textRenderer) daily(view *MonthView) error {
	if err := r.section("Daily Statistics"); err != nil {
		return err
	}
	rows := make([][]string, 0, 31)
	for day := view.FirstDay; day >= 1 && day <= view.LastDay && day <= 31; day++ {
		d := view.Days[day-1]
		rows = append(rows, []string{
			strconv.Itoa(day), u(d.Hits), share(d.Hits, view.Totals.Hits), u(d.Files), u(d.Pages),
			u(d.Visits), u(d.Sites), kb(d.Xfer),
		})
	}
	r.table([]string{"Day", "Hits", "%", "Files", "Pages", "Visits", "Sites", "KBytes"}, rows)
	return nil
}

func (r *textRenderer) hourly(view *MonthView) error {
	if err := r.section("Hourly Statistics"); err != nil {
		return err
	}
	rows := make([][]string, 0, 24)
	for hour, h := range view.Hours {
		rows = append(rows, []string{
			strconv.Itoa(hour), u(h.Hits), share(h.Hits, view.Totals.Hits), u(h.Files), u(h.Pages), kb(h.Xfer),
		})
	}
	r.table([]string{"Hour", "Hits", "%", "Files", "Pages", "KBytes"}, rows)
	return nil
}

func (r *textRenderer) responses(view *MonthView) error {
	if err := r.section("Hits by Response Code"); err != nil {
		return err
	}
	var rows [][]string
	for i, n := range view.Responses {
		if n == 0 {
			continue
		}
		rows = append(rows, []string{models.ResponseCodes[i].Description, u(n), share(n, view.Totals.Hits)})
	}
	r.table([]string{"Response", "Hits", "%"}, rows)
	return nil
}

func (r *textRenderer) topSites(view *MonthView) error {
	sites := top(view.Sites, r.opts.TopSites, func(n *aggregators.SiteNode) models.ObjectKind { return n.Kind })
	if len(sites) == 0 {
		return nil
	}
	if err := r.section(fmt.Sprintf("Top %d of %d Total Sites", len(sites), view.Totals.Sites)); err != nil {
		return err
	}
	rows := make([][]string, 0, len(sites))
	for i, n := range sites {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), u(n.Count), share(n.Count, view.Totals.Hits), u(n.Files), kb(n.Xfer), u(n.Visits), r.key(n.Node),
		})
	}
	r.table([]string{"#", "Hits", "%", "Files", "KBytes", "Visits", "Hostname"}, rows)
	return nil
}

func (r *textRenderer) topURLs(view *MonthView) error {
	urls := top(view.URLs, r.opts.TopURLs, func(n *aggregators.URLNode) models.ObjectKind { return n.Kind })
	if len(urls) == 0 {
		return nil
	}
	if err := r.section(fmt.Sprintf("Top %d of %d Total URLs", len(urls), view.Totals.URLs)); err != nil {
		return err
	}
	rows := make([][]string, 0, len(urls))
	for i, n := range urls {
		rows = append(rows, []string{strconv.Itoa(i + 1), u(n.Count), share(n.Count, view.Totals.Hits), kb(n.Xfer), r.key(n.Node)})
	}
	r.table([]string{"#", "Hits", "%", "KBytes", "URL"}, rows)
	return nil
}

func (r *textRenderer) entryExit(view *MonthView) error {
	lists := []struct {
		title string
		n     int
		count func(*aggregators.URLNode) uint64
	}{
		{"Entry Pages", r.opts.TopEntry, func(n *aggregators.URLNode) uint64 { return n.Entry }},
		{"Exit Pages", r.opts.TopExit, func(n *aggregators.URLNode) uint64 { return n.Exit }},
	}
	for _, l := range lists {
		l := l
		if l.n <= 0 {
			continue
		}
		var pages []*aggregators.URLNode
		var total uint64
		for _, n := range view.URLs {
			if c := l.count(n); c > 0 && n.Kind != models.KindHidden {
				pages = append(pages, n)
				total += c
			}
		}
		if len(pages) == 0 {
			continue
		}
		slices.SortStableFunc(pages, func(a, b *aggregators.URLNode) int {
			if ca, cb := l.count(a), l.count(b); ca != cb {
				if ca > cb {
					return -1
				}
				return 1
			}
			if a.Key < b.Key {
				return -1
			}
			if a.Key > b.Key {
				return 1
			}
			return 0
		})
		pages = pages[:min(l.n, len(pages))]

		if err := r.section(fmt.Sprintf("Top %d of %d Total %s", len(pages), total, l.title)); err != nil {
			return err
		}
		rows := make([][]string, 0, len(pages))
		for i, n := range pages {
			rows = append(rows, []string{strconv.Itoa(i + 1), u(n.Count), u(l.count(n)), share(l.count(n), total), r.key(n.Node)})
		}
		r.table([]string{"#", "Hits", "Visits", "%", "URL"}, rows)
	}
	return nil
}

func (r *textRenderer) topReferrers(view *MonthView) error {
	refs := top(view.Referrers, r.opts.TopReferrers, func(n *aggregators.ReferrerNode) models.ObjectKind { return n.Kind })
	return r.simpleTop(fmt.Sprintf("Top %d of %d Total Referrers", len(refs), view.Totals.Referrers), "Referrer",
		view.Totals.Hits, nodesOf(refs, func(n *aggregators.ReferrerNode) aggregators.Node { return n.Node }))
}

func (r *textRenderer) topSearch(view *MonthView) error {
	search := top(view.SearchStrings, r.opts.TopSearch, func(n *aggregators.SearchNode) models.ObjectKind { return n.Kind })
	var total uint64
	for _, n := range view.SearchStrings {
		total += n.Count
	}
	return r.simpleTop(fmt.Sprintf("Top %d of %d Total Search Strings", len(search), len(view.SearchStrings)), "Search String",
		total, nodesOf(search, func(n *aggregators.SearchNode) aggregators.Node { return n.Node }))
}

func (r *textRenderer) topAgents(view *MonthView) error {
	agents := top(view.Agents, r.opts.TopAgents, func(n *aggregators.AgentNode) models.ObjectKind { return n.Kind })
	return r.simpleTop(fmt.Sprintf("Top %d of %d Total User Agents", len(agents), view.Totals.Agents), "User Agent",
		view.Totals.Hits, nodesOf(agents, func(n *aggregators.AgentNode) aggregators.Node { return n.Node }))
}

func (r *textRenderer) topUsers(view *MonthView) error {
	users := top(view.Idents, r.opts.TopUsers, func(n *aggregators.IdentNode) models.ObjectKind { return n.Kind })
	if len(users) == 0 {
		return nil
	}
	if err := r.section(fmt.Sprintf("Top %d of %d Total Usernames", len(users), view.Totals.Users)); err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for i, n := range users {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), u(n.Count), share(n.Count, view.Totals.Hits), u(n.Files), kb(n.Xfer), u(n.Visits), r.key(n.Node),
		})
	}
	r.table([]string{"#", "Hits", "%", "Files", "KBytes", "Visits", "Username"}, rows)
	return nil
}

func (r *textRenderer) simpleTop(title, column string, total uint64, nodes []aggregators.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	if err := r.section(title); err != nil {
		return err
	}
	rows := make([][]string, 0, len(nodes))
	for i, n := range nodes {
		rows = append(rows, []string{strconv.Itoa(i + 1), u(n.Count), share(n.Count, total), r.key(n)})
	}
	r.table([]string{"#", "Hits", "%", column}, rows)
	return nil
}

func nodesOf[T any](in []T, node func(T) aggregators.Node) []aggregators.Node {
	out := make([]aggregators.Node, len(in))
	for i, n := range in {
		out[i] = node(n)
	}
	return out
}

// key renders a node key. Grouped nodes are highlighted.
func (r *textRenderer) key(n aggregators.Node) string {
	if n.Kind == models.KindGrouped {
		return r.styles.grouped.Render(n.Key)
	}
	return n.Key
}

func u(v uint64) string { return strconv.FormatUint(v, 10) }

func kb(xfer uint64) string { return strconv.FormatUint(xfer/1024, 10) }

func share(part, whole uint64) string { return strconv.FormatFloat(pct(part, whole), 'f', 2, 64) + "%" }
