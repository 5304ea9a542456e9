package aggregators

import (
	"context"

	"weblog-analyzer/internal/classifiers"
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/loggers"
)

const directRequest = "- (Direct Request)"

//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	// Aggregate adds one accepted record to the tables and counters of actx. rt is the record time
	// after sequence folding and stamp its seconds since the epoch.
	Aggregate(ctx context.Context, actx *AggregationContext, rec *models.LogRecord, rt models.RecordTime, stamp int64)
}

type PageClassifier interface {
	IsPage(url string) bool
}

type SearchPhraseExtractor interface {
	Extract(referrer, query string) (string, bool)
}

type everyPage struct{}

func (everyPage) IsPage(string) bool { return true }

type ServiceOptions struct {
	Lists          *classifiers.Lists
	Pages          PageClassifier
	Search         SearchPhraseExtractor // nil disables search strings
	TrackReferrers bool
	TrackAgents    bool
	GroupDomains   int // labels kept for domain grouping, 0 disables it
}

type aggregationService struct {
	lists          *classifiers.Lists
	pages          PageClassifier
	search         SearchPhraseExtractor
	trackReferrers bool
	trackAgents    bool
	groupDomains   int
}

func NewAggregationService(opts ServiceOptions) AggregationService {
	lists := opts.Lists
	if lists == nil {
		lists = &classifiers.Lists{}
	}
	pages := opts.Pages
	if pages == nil {
		pages = everyPage{}
	}
	return &aggregationService{
		lists:          lists,
		pages:          pages,
		search:         opts.Search,
		trackReferrers: opts.TrackReferrers,
		trackAgents:    opts.TrackAgents,
		groupDomains:   opts.GroupDomains,
	}
}

func (s *aggregationService) Aggregate(ctx context.Context, actx *AggregationContext, rec *models.LogRecord, rt models.RecordTime, stamp int64) {
	actx.Responses[models.ResponseIndex(rec.RespCode)]++

	// Failed requests never count as page views.
	page := rec.RespCode < 400 && s.pages.IsPage(rec.URL)
	hit := Hit{Hits: 1, Xfer: rec.XferSize, Stamp: stamp, URL: rec.URL, Page: page}
	if rec.RespCode == 200 || rec.RespCode == 206 {
		hit.Files = 1
	}

	created, err := actx.PutURL(rec.URL, models.KindRegular, 1, rec.XferSize)
	s.count(ctx, actx.URLs.Name(), rec.URL, created, err, &actx.Totals.URLs)
	if rec.RespCode == 200 || rec.RespCode == 304 || rec.RespCode == 206 {
		created, err = actx.PutIdent(rec.Ident, models.KindRegular, hit)
		s.count(ctx, actx.Idents.Name(), rec.Ident, created, err, &actx.Totals.Users)
	}

	if s.trackReferrers && rec.Referrer != "" {
		created, err := actx.PutReferrer(rec.Referrer, models.KindRegular, 1)
		s.count(ctx, actx.Referrers.Name(), rec.Referrer, created, err, &actx.Totals.Referrers)
	}

	created, err = actx.PutSite(actx.DailySites, rec.Hostname, models.KindRegular, hit)
	s.count(ctx, actx.DailySites.Name(), rec.Hostname, created, err, &actx.DaySites)
	created, err = actx.PutSite(actx.MonthlySites, rec.Hostname, models.KindRegular, hit)
	s.count(ctx, actx.MonthlySites.Name(), rec.Hostname, created, err, &actx.Totals.Sites)

	if s.trackAgents && rec.Agent != "" {
		created, err := actx.PutAgent(rec.Agent, models.KindRegular, 1)
		s.count(ctx, actx.Agents.Name(), rec.Agent, created, err, &actx.Totals.Agents)
	}

	day, hour := &actx.Days[rt.Day-1], &actx.Hours[rt.Hour]
	actx.Totals.Hits++
	actx.HourHits++
	actx.Totals.Xfer += rec.XferSize
	day.Xfer += rec.XferSize
	day.Hits++
	hour.Xfer += rec.XferSize
	hour.Hits++

	if rec.RespCode == 200 {
		actx.Totals.Files++
		day.Files++
		hour.Files++
	}

	if page {
		actx.Totals.Pages++
		day.Pages++
		hour.Pages++
		if s.search != nil {
			if phrase, ok := s.search.Extract(rec.Referrer, rec.SearchStr); ok {
				_, err := actx.PutSearch(phrase, 1)
				s.count(ctx, actx.SearchStrings.Name(), phrase, false, err, nil)
			}
		}
	}

	s.aggregateGroups(ctx, actx, rec, hit)
}

// aggregateGroups adds the record to the grouped nodes it belongs to. Grouped nodes never count as
// distinct entities.
func (s *aggregationService) aggregateGroups(ctx context.Context, actx *AggregationContext, rec *models.LogRecord, hit Hit) {
	groupHit := hit
	groupHit.Files = 0
	if rec.RespCode == 200 {
		groupHit.Files = 1
	}

	if name, ok := s.lists.Group.URLs.Match(rec.URL); ok {
		_, err := actx.PutURL(name, models.KindGrouped, 1, rec.XferSize)
		s.count(ctx, actx.URLs.Name(), name, false, err, nil)
	}

	if name, ok := s.lists.Group.Sites.Match(rec.Hostname); ok {
		_, err := actx.PutSite(actx.MonthlySites, name, models.KindGrouped, groupHit)
		s.count(ctx, actx.MonthlySites.Name(), name, false, err, nil)
	} else if s.groupDomains > 0 {
		if domain, ok := classifiers.DomainOf(rec.Hostname, s.groupDomains); ok {
			_, err := actx.PutSite(actx.MonthlySites, domain, models.KindGrouped, groupHit)
			s.count(ctx, actx.MonthlySites.Name(), domain, false, err, nil)
		}
	}

	if name, ok := s.lists.Group.Referrers.Match(rec.Referrer); ok {
		_, err := actx.PutReferrer(name, models.KindGrouped, 1)
		s.count(ctx, actx.Referrers.Name(), name, false, err, nil)
	}

	if name, ok := s.lists.Group.Agents.Match(rec.Agent); ok {
		_, err := actx.PutAgent(name, models.KindGrouped, 1)
		s.count(ctx, actx.Agents.Name(), name, false, err, nil)
	}

	if name, ok := s.lists.Group.Users.Match(rec.Ident); ok {
		_, err := actx.PutIdent(name, models.KindGrouped, groupHit)
		s.count(ctx, actx.Idents.Name(), name, false, err, nil)
	}
}

// count bumps ctr for a newly created node and reports a skipped update.
func (s *aggregationService) count(ctx context.Context, table, key string, created bool, err error, ctr *uint64) {
	if err != nil {
		metricTableInsertFailedTotal.WithLabelValues(table).Inc()
		loggers.Ctx(ctx).Warn().Err(errInsertFailed(table, err)).Str(loggers.FieldTable, table).Str("key", key).Msg("table update skipped")
		return
	}
	if created && ctr != nil {
		*ctr++
	}
}
