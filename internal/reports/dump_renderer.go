package reports

import (
	"bytes"
	"context"
	"fmt"

	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/filestorages"
	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/shared/metrics"
)

const defaultDumpExt = "tab"

// Dump table names accepted in DumpOptions.Tables.
const (
	DumpSites     = "sites"
	DumpURLs      = "urls"
	DumpReferrers = "referrers"
	DumpAgents    = "agents"
	DumpUsers     = "users"
	DumpSearch    = "search"
)

type DumpOptions struct {
	Tables []string
	Header bool // first line names the columns
	Hidden bool // include hidden nodes
	Ext    string
}

type dumpTable struct {
	prefix string
	header []string
	write  func(buf *bytes.Buffer, view *MonthView, hidden bool)
}

var dumpTables = map[string]dumpTable{
	DumpSites: {"site", []string{"Hits", "Files", "KBytes", "Visits", "Hostname"}, func(buf *bytes.Buffer, view *MonthView, hidden bool) {
		for _, n := range view.Sites {
			if dumped(n.Kind, hidden) {
				row(buf, u(n.Count), u(n.Files), kb(n.Xfer), u(n.Visits), n.Key)
			}
		}
	}},
	DumpURLs: {"url", []string{"Hits", "KBytes", "URL"}, func(buf *bytes.Buffer, view *MonthView, hidden bool) {
		for _, n := range view.URLs {
			if dumped(n.Kind, hidden) {
				row(buf, u(n.Count), kb(n.Xfer), n.Key)
			}
		}
	}},
	DumpReferrers: {"ref", []string{"Hits", "Referrer"}, func(buf *bytes.Buffer, view *MonthView, hidden bool) {
		for _, n := range view.Referrers {
			if dumped(n.Kind, hidden) {
				row(buf, u(n.Count), n.Key)
			}
		}
	}},
	DumpAgents: {"agent", []string{"Hits", "User Agent"}, func(buf *bytes.Buffer, view *MonthView, hidden bool) {
		for _, n := range view.Agents {
			if dumped(n.Kind, hidden) {
				row(buf, u(n.Count), n.Key)
			}
		}
	}},
	DumpUsers: {"user", []string{"Hits", "Files", "KBytes", "Visits", "Username"}, func(buf *bytes.Buffer, view *MonthView, hidden bool) {
		for _, n := range view.Idents {
			if dumped(n.Kind, hidden) {
				row(buf, u(n.Count), u(n.Files), kb(n.Xfer), u(n.Visits), n.Key)
			}
		}
	}},
	DumpSearch: {"search", []string{"Hits", "Search String"}, func(buf *bytes.Buffer, view *MonthView, _ bool) {
		for _, n := range view.SearchStrings {
			row(buf, u(n.Count), n.Key)
		}
	}},
}

// dumped reports whether a node of kind is written. Grouped nodes never are.
func dumped(kind models.ObjectKind, hidden bool) bool {
	switch kind {
	case models.KindGrouped:
		return false
	case models.KindHidden:
		return hidden
	}
	return true
}

func row(buf *bytes.Buffer, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte('\t')
		}
		buf.WriteString(f)
	}
	buf.WriteByte('\n')
}

type dumpRenderer struct {
	storage filestorages.FileStorage
	opts    DumpOptions
}

// NewDumpRenderer returns a Renderer writing one tab separated file per table and month, named
// like site_202401.tab.
func NewDumpRenderer(storage filestorages.FileStorage, opts DumpOptions) Renderer {
	if opts.Ext == "" {
		opts.Ext = defaultDumpExt
	}
	return &dumpRenderer{storage: storage, opts: opts}
}

// DumpKey returns the storage key of a table dump.
func DumpKey(table string, year, month int, ext string) string {
	if ext == "" {
		ext = defaultDumpExt
	}
	prefix := table
	if t, ok := dumpTables[table]; ok {
		prefix = t.prefix
	}
	return fmt.Sprintf("%s_%04d%02d.%s", prefix, year, month, ext)
}

func (r *dumpRenderer) RenderMonth(ctx context.Context, view *MonthView) error {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldComponent, "report").Logger()

	for _, name := range r.opts.Tables {
		t, ok := dumpTables[name]
		if !ok {
			continue
		}
		key := DumpKey(name, view.Year, view.Month, r.opts.Ext)

		var buf bytes.Buffer
		if r.opts.Header {
			row(&buf, t.header...)
		}
		t.write(&buf, view, r.opts.Hidden)
		size := buf.Len()

		if _, err := r.storage.Put(ctx, key, &buf, filestorages.PutOptions{AllowOverwrite: true}); err != nil {
			svcErr := errInternalDumpFailed(key, err)
			metricMonthsRenderedTotal.WithLabelValues("dump", svcErr.Code).Inc()
			logger.Error().Err(svcErr).Str(loggers.FieldTable, name).Msg("failed to write dump")
			return svcErr
		}
		logger.Debug().Str(loggers.FieldTable, name).Str(loggers.FieldName, key).
			Int("bytes", size).Msg("dump written")
	}
	metricMonthsRenderedTotal.WithLabelValues("dump", metrics.ValueNoError).Inc()
	return nil
}
