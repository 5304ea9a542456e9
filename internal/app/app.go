package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/classifiers"
	internalhttp "weblog-analyzer/internal/http"
	"weblog-analyzer/internal/ingestors"
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/normalizers"
	"weblog-analyzer/internal/parsers"
	"weblog-analyzer/internal/reports"
	"weblog-analyzer/internal/resolvers"
	"weblog-analyzer/internal/shared/configs"
	"weblog-analyzer/internal/shared/filestorages"
	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/shared/ulid"
	"weblog-analyzer/internal/stores"
)

const appName = "weblog-analyzer"

// App holds the dependencies of one analyzer run.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	runID     string
	storage   filestorages.FileStorage
	status    *runStatus
	server    *http.Server // nil when the status server is disabled

	stdin  io.Reader
	lookup resolvers.AddrLookup
}

type options struct {
	stdin     io.Reader
	logOutput io.Writer
	lookup    resolvers.AddrLookup
}

// Option customizes an App.
type Option func(*options)

// WithStdin sets the reader used for the "-" input.
func WithStdin(r io.Reader) Option { return func(o *options) { o.stdin = r } }

// WithLogOutput sets where diagnostics are written. The default is stderr.
func WithLogOutput(w io.Writer) Option { return func(o *options) { o.logOutput = w } }

// WithAddrLookup replaces the system resolver of the DNS pre-pass.
func WithAddrLookup(lookup resolvers.AddrLookup) Option { return func(o *options) { o.lookup = lookup } }

// New creates an App from a validated config.
func New(config *configs.Config, opts ...Option) (*App, error) {
	o := options{stdin: os.Stdin, logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	level, err := loggers.LevelForVerbosity(config.Log.Verbosity, config.Log.Level)
	if err != nil {
		return nil, errInvalidConfig(err)
	}
	appLogger, err := loggers.NewWithWriter(level, o.logOutput)
	if err != nil {
		return nil, errInvalidConfig(fmt.Errorf("failed to initialize logger: %w", err))
	}
	runID := ulid.NewULID()
	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Str(loggers.FieldRunID, runID).
		Logger()

	fileStorage, err := filestorages.NewFileStorage(config.Output.Dir)
	if err != nil {
		return nil, errInternalStorage(err)
	}

	app := &App{
		config:    config,
		appLogger: appLogger,
		runID:     runID,
		storage:   fileStorage,
		status:    newRunStatus(runID),
		stdin:     o.stdin,
		lookup:    o.lookup,
	}

	if config.Server.Port > 0 {
		httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
		app.server = &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Server.Port),
			Handler:           internalhttp.NewRouter(app.status, httpLogger),
			ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
			ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
			WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
			IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
		}
	}
	return app, nil
}

// RunID identifies this run in logs and on /status.
func (app *App) RunID() string { return app.runID }

// StartServer serves /status, /healthz and /metrics in the background when a port is configured.
// A server failure is logged and does not stop the run.
func (app *App) StartServer() {
	if app.server == nil {
		return
	}
	app.appLogger.Info().Int("port", app.config.Server.Port).Msg("starting status server")
	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.appLogger.Error().Err(errInternalServerRun(err)).Msg("status server stopped")
		}
	}()
}

// Shutdown stops the status server.
func (app *App) Shutdown(ctx context.Context) error {
	if app.server == nil {
		return nil
	}
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("status server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("status server stopped")
	return nil
}

// pipeline is everything built from the config for one run.
type pipeline struct {
	logType      models.LogType
	parserOpts   parsers.Options
	lists        *classifiers.Lists
	ledger       *stores.HistoryLedger
	historyStore stores.HistoryStore
	stateStore   stores.StateStore
	rolluper     aggregators.PeriodRolluper
	actx         *aggregators.AggregationContext
}

func (app *App) buildPipeline() (*pipeline, error) {
	cfg := app.config
	logType, err := models.NewLogTypeFromString(cfg.Input.LogType)
	if err != nil {
		return nil, errInvalidConfig(err)
	}
	loc := time.Local
	if cfg.Input.GMTTime {
		loc = time.UTC
	}
	lists := classifiers.NewLists(cfg.Lists, cfg.Analysis.HideAllSites)
	ledger := stores.NewHistoryLedger(cfg.History.Months)

	return &pipeline{
		logType:      logType,
		parserOpts:   parsers.Options{Location: loc, TrimSquidURL: cfg.Input.TrimSquidURL},
		lists:        lists,
		ledger:       ledger,
		historyStore: stores.NewHistoryStore(app.storage, cfg.Output.HistoryName),
		stateStore:   stores.NewStateStore(app.storage, cfg.Output.StateName),
		rolluper:     aggregators.NewAggregateRolluper(newMonthCloser(ledger, app.newRenderer())),
		actx: aggregators.NewAggregationContext(aggregators.ContextOptions{
			VisitTimeout:   int64(cfg.Analysis.VisitTimeout),
			TrackEntryExit: logType.TracksEntryExit(),
			MaxNodes:       cfg.Analysis.MaxNodesPerTable,
			Hidden: aggregators.HiddenRules{
				Sites:     lists.SiteHidden,
				URLs:      lists.Hide.URLs.Contains,
				Referrers: lists.Hide.Referrers.Contains,
				Agents:    lists.Hide.Agents.Contains,
				Users:     lists.Hide.Users.Contains,
			},
		}),
	}, nil
}

func (app *App) newRenderer() reports.Renderer {
	cfg := app.config
	var renderers []reports.Renderer
	if cfg.Output.Report {
		a := cfg.Analysis
		renderers = append(renderers, reports.NewTextFileRenderer(app.storage, reports.TextOptions{
			Title:        cfg.Output.Title,
			TopSites:     a.TopSites,
			TopURLs:      a.TopURLs,
			TopEntry:     a.TopEntry,
			TopExit:      a.TopExit,
			TopReferrers: a.TopReferrers,
			TopSearch:    a.TopSearch,
			TopAgents:    a.TopAgents,
			TopUsers:     a.TopUsers,
		}))
	}
	if len(cfg.Output.Dump) > 0 {
		renderers = append(renderers, reports.NewDumpRenderer(app.storage, reports.DumpOptions{
			Tables: cfg.Output.Dump,
			Header: cfg.Output.DumpHeader,
			Hidden: cfg.Output.DumpHidden,
		}))
	}
	if len(renderers) == 0 {
		return nil
	}
	return reports.Multi(renderers...)
}

func (app *App) newIngestor(p *pipeline, hosts ingestors.HostLookup) (ingestors.IngestionService, error) {
	cfg := app.config
	parser, err := parsers.NewRecordParser(p.logType, p.parserOpts)
	if err != nil {
		return nil, err
	}
	a := cfg.Analysis
	normalizer := normalizers.NewFieldNormalizer(normalizers.Options{
		LogType:       p.logType,
		StripCGI:      a.StripCGI,
		NormalizeURLs: a.NormalizeURLs,
		DefaultIndex:  a.DefaultIndex,
		IndexAliases:  a.IndexAliases,
		MangleAgents:  a.MangleAgents,
		AgentFamily:   a.AgentFamily,
	})

	pageTypes := a.PageTypes
	if len(pageTypes) == 0 {
		pageTypes = p.logType.DefaultPageTypes()
	}
	var search aggregators.SearchPhraseExtractor
	if p.logType.ExtractsSearchStrings() && (a.TopSearch > 0 || dumps(cfg, reports.DumpSearch)) {
		engines := make([]classifiers.GroupPattern, 0, len(a.SearchEngines))
		for _, e := range a.SearchEngines {
			engines = append(engines, classifiers.GroupPattern{Pattern: e.Pattern, Name: e.Query})
		}
		search = normalizers.NewSearchExtractor(engines, a.SearchCaseInsensitive)
	}
	aggregation := aggregators.NewAggregationService(aggregators.ServiceOptions{
		Lists:          p.lists,
		Pages:          normalizers.NewPageMatcher(pageTypes, a.PagePrefixes, a.OmitPages),
		Search:         search,
		TrackReferrers: a.TopReferrers > 0 || dumps(cfg, reports.DumpReferrers),
		TrackAgents:    a.TopAgents > 0 || dumps(cfg, reports.DumpAgents),
		GroupDomains:   a.GroupDomains,
	})

	return ingestors.NewIngestionService(parser, normalizer, p.lists, aggregation, p.rolluper, ingestors.Options{
		FoldSequenceErrors: cfg.Input.FoldSeqErr,
		Hosts:              hosts,
	}), nil
}

func dumps(cfg *configs.Config, table string) bool {
	for _, t := range cfg.Output.Dump {
		if t == table {
			return true
		}
	}
	return false
}

// Run analyzes every configured input: an optional DNS pre-pass, then the aggregation pass, then
// the end of run bookkeeping. A run without a single valid record fails with exit status 1.
func (app *App) Run(ctx context.Context) (*RunSummary, error) {
	started := time.Now()
	cfg := app.config
	logger := app.appLogger
	ctx = logger.WithContext(ctx)

	p, err := app.buildPipeline()
	if err != nil {
		return nil, err
	}
	inputs, err := expandInputs(cfg.Input.Files)
	if err != nil {
		return nil, err
	}

	hosts, err := app.resolveHosts(ctx, p, inputs)
	if err != nil {
		return nil, err
	}
	var hostLookup ingestors.HostLookup
	if hosts != nil {
		defer hosts.Close()
		hostLookup = hosts
	}

	app.status.setPhase(phaseAggregate)
	if !cfg.History.Ignore {
		if err := p.historyStore.Load(ctx, p.ledger); err != nil {
			logger.Warn().Err(err).Msg("history not loaded, starting empty")
		}
	}

	ingestor, err := app.newIngestor(p, hostLookup)
	if err != nil {
		return nil, err
	}
	app.status.setIngestor(ingestor)

	if cfg.Incremental.Enabled && !cfg.Incremental.IgnoreState {
		restored, err := p.stateStore.Restore(ctx, p.actx)
		if err != nil {
			return nil, err
		}
		if restored {
			ingestor.ArmDuplicateCheck()
		}
	}

	for _, name := range inputs {
		if err := app.ingestSource(ctx, ingestor, p.actx, name); err != nil {
			return nil, err
		}
	}

	app.status.setPhase(phaseFinalize)
	res := ingestor.Result()
	if err := app.finish(ctx, p, res); err != nil {
		return nil, err
	}
	app.status.setPhase(phaseDone)

	summary := &RunSummary{RunID: app.runID, Result: res, Elapsed: time.Since(started)}
	if !res.Processed() {
		return summary, errNoValidRecords()
	}
	return summary, nil
}

func (app *App) ingestSource(ctx context.Context, ingestor ingestors.IngestionService, actx *aggregators.AggregationContext, name string) error {
	rc, err := openLogSource(name, app.stdin)
	if err != nil {
		return err
	}
	defer rc.Close()

	app.status.setSource(name)
	err = ingestor.Ingest(ctx, actx, name, ctxReader{ctx: ctx, r: rc})
	app.status.setMonth(actx.Cursor.Year, actx.Cursor.Month)
	return err
}

// finish folds the open day, saves the run state and closes the last month.
func (app *App) finish(ctx context.Context, p *pipeline, res ingestors.IngestResult) error {
	logger := loggers.Ctx(ctx)

	if res.GoodRecords {
		p.rolluper.Finish(p.actx)
	}
	if !res.Processed() {
		return nil
	}

	if app.config.Incremental.Enabled {
		if err := p.stateStore.Save(ctx, p.actx); err != nil {
			logger.Error().Err(err).Msg("failed to save run state")
			if err := p.stateStore.Remove(ctx); err != nil {
				logger.Error().Err(err).Msg("failed to remove stale run state")
			}
		}
	}
	if err := p.rolluper.CloseFinal(ctx, p.actx); err != nil {
		return err
	}
	if err := p.historyStore.Save(ctx, p.ledger); err != nil {
		logger.Error().Err(err).Msg("failed to save history")
	}
	return nil
}

// resolveHosts runs the DNS pre-pass over every regular input and reopens the cache read-only for
// the aggregation pass. Cache problems disable DNS for the run; a log read failure is fatal.
func (app *App) resolveHosts(ctx context.Context, p *pipeline, inputs []string) (resolvers.Cache, error) {
	dns := app.config.DNS
	if dns.Workers <= 0 || dns.CacheFile == "" {
		return nil, nil
	}
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldComponent, "resolver").Logger()
	ctx = logger.WithContext(ctx)
	app.status.setPhase(phaseResolve)

	writer, err := resolvers.OpenCache(ctx, dns.CacheFile, resolvers.CacheOptions{Mode: resolvers.LockExclusive, TTLDays: dns.CacheTTLDays})
	if err != nil {
		logger.Warn().Err(err).Msg("dns lookups disabled")
		return nil, nil
	}
	for _, name := range inputs {
		if !isRegular(name) {
			logger.Warn().Str(loggers.FieldLogFile, name).Msg("dns pre-pass skipped for standard input")
			continue
		}
		if err := app.resolveSource(ctx, p, writer, name); err != nil {
			_ = writer.Close()
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		logger.Warn().Err(err).Msg("dns cache close failed")
	}

	reader, err := resolvers.OpenCache(ctx, dns.CacheFile, resolvers.CacheOptions{Mode: resolvers.LockShared, TTLDays: dns.CacheTTLDays})
	if err != nil {
		logger.Warn().Err(err).Msg("dns lookups disabled")
		return nil, nil
	}
	return reader, nil
}

func (app *App) resolveSource(ctx context.Context, p *pipeline, cache resolvers.Cache, name string) error {
	rc, err := openLogSource(name, app.stdin)
	if err != nil {
		return err
	}
	defer rc.Close()

	// The pre-pass gets its own parser; W3C parsers keep per-file field state.
	parser, err := parsers.NewRecordParser(p.logType, p.parserOpts)
	if err != nil {
		return err
	}
	dns := app.config.DNS
	resolver := resolvers.NewResolver(cache, parser, app.lookup, resolvers.ResolverOptions{
		Workers:  dns.Workers,
		Timeout:  time.Duration(dns.Timeout) * time.Second,
		CacheIPs: dns.CacheIPs,
		RunID:    app.runID,
	})
	app.status.setSource(name)
	res, err := resolver.Resolve(ctx, ctxReader{ctx: ctx, r: rc})
	if err != nil {
		return err
	}
	loggers.Ctx(ctx).Info().Str(loggers.FieldLogFile, name).Uint64("lines", res.Lines).
		Uint64("addresses", res.Addresses).Msg("dns pre-pass done")
	return nil
}

// ctxReader stops a read loop once ctx is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
