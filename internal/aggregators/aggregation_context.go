package aggregators

import (
	"strings"

	"weblog-analyzer/internal/models"
)

// Totals are the month to date counters.
type Totals struct {
	Hits      uint64
	Files     uint64
	Pages     uint64
	Visits    uint64
	Xfer      uint64
	Sites     uint64
	URLs      uint64
	Referrers uint64
	Agents    uint64
	Users     uint64
}

type DayCounters struct {
	Hits   uint64
	Files  uint64
	Xfer   uint64
	Sites  uint64
	Pages  uint64
	Visits uint64
}

type HourCounters struct {
	Hits  uint64
	Files uint64
	Xfer  uint64
	Pages uint64
}

// Cursor is the timestamp of the last record accepted into the current month.
type Cursor struct {
	models.RecordTime
	Stamp int64
}

// Loaded reports whether a month is being accumulated.
func (c Cursor) Loaded() bool {
	return c.Month != 0
}

// ContextOptions configure table behaviour.
type ContextOptions struct {
	VisitTimeout   int64 // seconds
	TrackEntryExit bool
	MaxNodes       int // per table, 0 is unlimited
	Hidden         HiddenRules
}

// HiddenRules decide which new regular nodes are classified hidden.
type HiddenRules struct {
	Sites     func(string) bool
	URLs      func(string) bool
	Referrers func(string) bool
	Agents    func(string) bool
	Users     func(string) bool
}

// AggregationContext owns every table and counter of the month being accumulated.
type AggregationContext struct {
	Cursor      Cursor
	Totals      Totals
	DaySites    uint64 // distinct sites of the current day
	HourHits    uint64 // hits of the current hour
	MaxHourHits uint64
	FirstDay    int
	LastDay     int
	Days        [31]DayCounters
	Hours       [24]HourCounters
	Responses   [models.TotalResponseCodes]uint64

	MonthlySites  *SiteTable
	DailySites    *SiteTable
	URLs          *URLTable
	Referrers     *ReferrerTable
	Agents        *AgentTable
	SearchStrings *SearchTable
	Idents        *IdentTable

	visitTimeout   int64
	trackEntryExit bool
}

func NewAggregationContext(opts ContextOptions) *AggregationContext {
	if opts.VisitTimeout <= 0 {
		opts.VisitTimeout = 1800
	}
	c := &AggregationContext{
		MonthlySites:   newTable[SiteNode]("sites_monthly", opts.MaxNodes, opts.Hidden.Sites),
		DailySites:     newTable[SiteNode]("sites_daily", opts.MaxNodes, opts.Hidden.Sites),
		URLs:           newTable[URLNode]("urls", opts.MaxNodes, opts.Hidden.URLs),
		Referrers:      newTable[ReferrerNode]("referrers", opts.MaxNodes, opts.Hidden.Referrers),
		Agents:         newTable[AgentNode]("agents", opts.MaxNodes, opts.Hidden.Agents),
		SearchStrings:  newTable[SearchNode]("search", opts.MaxNodes, nil),
		Idents:         newTable[IdentNode]("users", opts.MaxNodes, opts.Hidden.Users),
		visitTimeout:   opts.VisitTimeout,
		trackEntryExit: opts.TrackEntryExit,
	}
	c.resetCounters()
	return c
}

func (c *AggregationContext) VisitTimeout() int64 { return c.visitTimeout }

// PutSite records a hit for host in the monthly or daily site table. The returned flag reports
// whether a new node was created.
func (c *AggregationContext) PutSite(t *SiteTable, host string, kind models.ObjectKind, hit Hit) (bool, error) {
	host, _ = models.Truncate(host, models.MaxHost)
	entryExit := c.trackEntryExit && t == c.MonthlySites && kind != models.KindGrouped

	if n := t.find(host, kind); n != nil {
		n.Count += hit.Hits
		n.Files += hit.Files
		n.Xfer += hit.Xfer
		if hit.Page {
			if hit.Stamp-n.Stamp >= c.visitTimeout {
				n.Visits++
				if entryExit {
					c.UpdateExit(n.LastURL)
					c.UpdateEntry(hit.URL)
				}
			}
			n.LastURL = c.FindURL(hit.URL)
			n.Stamp = hit.Stamp
		}
		return false, nil
	}

	n, err := t.insert(host, kind)
	if err != nil {
		return false, err
	}
	n.Count = hit.Hits
	n.Files = hit.Files
	n.Xfer = hit.Xfer
	if hit.Page {
		if entryExit {
			c.UpdateEntry(hit.URL)
		}
		n.LastURL = c.FindURL(hit.URL)
		n.Stamp = hit.Stamp
		n.Visits = 1
	}
	return true, nil
}

// RestoreSite links a persisted site node.
func (c *AggregationContext) RestoreSite(t *SiteTable, snap SiteNode) error {
	key, _ := models.Truncate(snap.Key, models.MaxHost)
	if n := t.find(key, snap.Kind); n != nil {
		n.Count += snap.Count
		n.Files += snap.Files
		n.Xfer += snap.Xfer
		return nil
	}
	n, err := t.insert(key, snap.Kind)
	if err != nil {
		return err
	}
	n.Count, n.Files, n.Xfer = snap.Count, snap.Files, snap.Xfer
	n.Visits, n.Stamp = snap.Visits, snap.Stamp
	n.LastURL = c.FindURL(snap.LastURL)
	return nil
}

// PutURL records hits for a URL. URLs starting with '-' are not tracked.
func (c *AggregationContext) PutURL(url string, kind models.ObjectKind, hits, xfer uint64) (bool, error) {
	return c.putURL(URLNode{Node: Node{Key: url, Kind: kind, Count: hits}, Xfer: xfer})
}

// RestoreURL links a persisted URL node with its entry and exit counts.
func (c *AggregationContext) RestoreURL(snap URLNode) error {
	_, err := c.putURL(snap)
	return err
}

func (c *AggregationContext) putURL(u URLNode) (bool, error) {
	if u.Key == "" || u.Key[0] == '-' {
		return false, nil
	}
	key, _ := models.Truncate(u.Key, models.MaxURLKey)
	if n := c.URLs.find(key, u.Kind); n != nil {
		n.Count += u.Count
		n.Xfer += u.Xfer
		return false, nil
	}
	n, err := c.URLs.insert(key, u.Kind)
	if err != nil {
		return false, err
	}
	n.Count, n.Xfer, n.Entry, n.Exit = u.Count, u.Xfer, u.Entry, u.Exit
	return true, nil
}

// PutReferrer records hits for a referrer. Referrers starting with '-' count as direct requests.
func (c *AggregationContext) PutReferrer(ref string, kind models.ObjectKind, hits uint64) (bool, error) {
	if strings.HasPrefix(ref, "-") {
		ref = directRequest
	}
	ref, _ = models.Truncate(ref, models.MaxRefKey)
	return putCounted(c.Referrers, ref, kind, hits)
}

// PutAgent records hits for a user agent. Agents starting with '-' are not tracked.
func (c *AggregationContext) PutAgent(agent string, kind models.ObjectKind, hits uint64) (bool, error) {
	if agent == "" || agent[0] == '-' {
		return false, nil
	}
	agent, _ = models.Truncate(agent, models.MaxAgent)
	return putCounted(c.Agents, agent, kind, hits)
}

// PutSearch records a search phrase. Empty phrases and phrases starting with a space are skipped.
func (c *AggregationContext) PutSearch(phrase string, hits uint64) (bool, error) {
	if phrase == "" || phrase[0] == ' ' {
		return false, nil
	}
	phrase, _ = models.Truncate(phrase, models.MaxSearchKey)
	return putCounted(c.SearchStrings, phrase, models.KindRegular, hits)
}

func putCounted[T any, P tableNode[T]](t *Table[T, P], key string, kind models.ObjectKind, hits uint64) (bool, error) {
	if n := t.find(key, kind); n != nil {
		n.base().Count += hits
		return false, nil
	}
	n, err := t.insert(key, kind)
	if err != nil {
		return false, err
	}
	n.base().Count = hits
	return true, nil
}

// PutIdent records a hit for an authenticated user. Empty idents and "-" are not tracked.
func (c *AggregationContext) PutIdent(ident string, kind models.ObjectKind, hit Hit) (bool, error) {
	if ident == "" || ident[0] == '-' {
		return false, nil
	}
	ident, _ = models.Truncate(ident, models.MaxIdent)
	if n := c.Idents.find(ident, kind); n != nil {
		n.Count += hit.Hits
		n.Files += hit.Files
		n.Xfer += hit.Xfer
		if hit.Page {
			if hit.Stamp-n.Stamp >= c.visitTimeout {
				n.Visits++
			}
			n.Stamp = hit.Stamp
		}
		return false, nil
	}
	n, err := c.Idents.insert(ident, kind)
	if err != nil {
		return false, err
	}
	n.Count, n.Files, n.Xfer = hit.Hits, hit.Files, hit.Xfer
	n.Visits = 1
	if hit.Page {
		n.Stamp = hit.Stamp
	}
	return true, nil
}

// RestoreIdent links a persisted ident node.
func (c *AggregationContext) RestoreIdent(snap IdentNode) error {
	if snap.Key == "" || snap.Key[0] == '-' {
		return nil
	}
	key, _ := models.Truncate(snap.Key, models.MaxIdent)
	if n := c.Idents.find(key, snap.Kind); n != nil {
		n.Count += snap.Count
		n.Files += snap.Files
		n.Xfer += snap.Xfer
		return nil
	}
	n, err := c.Idents.insert(key, snap.Kind)
	if err != nil {
		return err
	}
	n.Count, n.Files, n.Xfer, n.Visits, n.Stamp = snap.Count, snap.Files, snap.Xfer, snap.Visits, snap.Stamp
	return nil
}

// FindURL returns url when the URL table holds it and "" otherwise.
func (c *AggregationContext) FindURL(url string) string {
	if url == "" {
		return ""
	}
	if n := c.URLs.findFirst(url, func(*Node) bool { return true }); n != nil {
		return n.Key
	}
	return ""
}

func notGrouped(n *Node) bool { return n.Kind != models.KindGrouped }

// UpdateEntry counts a visit starting at url.
func (c *AggregationContext) UpdateEntry(url string) {
	if url == "" {
		return
	}
	if n := c.URLs.findFirst(url, notGrouped); n != nil {
		n.Entry++
	}
}

// UpdateExit counts a visit ending at url.
func (c *AggregationContext) UpdateExit(url string) {
	if url == "" {
		return
	}
	if n := c.URLs.findFirst(url, notGrouped); n != nil {
		n.Exit++
	}
}

// MonthUpdateExit closes the visits of every site idle for at least the visit timeout at stamp.
func (c *AggregationContext) MonthUpdateExit(stamp int64) {
	if !c.trackEntryExit {
		return
	}
	c.MonthlySites.Each(func(n *SiteNode) {
		if n.Kind != models.KindGrouped && stamp-n.Stamp >= c.visitTimeout {
			c.UpdateExit(n.LastURL)
		}
	})
}

// TotalVisits sums the visits of the regular and hidden nodes of a site table.
func TotalVisits(t *SiteTable) uint64 {
	var total uint64
	t.Each(func(n *SiteNode) {
		if n.Kind != models.KindGrouped {
			total += n.Visits
		}
	})
	return total
}

// CloseDay folds the running day counters into the day slot and starts a new day.
func (c *AggregationContext) CloseDay() {
	if d := c.Cursor.Day; d >= 1 && d <= 31 {
		c.Days[d-1].Sites = c.DaySites
		c.Days[d-1].Visits = TotalVisits(c.DailySites)
	}
	c.DaySites = 0
	c.DailySites.Reset()
}

// ClearMonth drops every table and counter. The cursor and the running hour hits survive.
func (c *AggregationContext) ClearMonth() {
	c.resetCounters()
	c.MonthlySites.Reset()
	c.DailySites.Reset()
	c.URLs.Reset()
	c.Referrers.Reset()
	c.Agents.Reset()
	c.SearchStrings.Reset()
	c.Idents.Reset()
}

func (c *AggregationContext) resetCounters() {
	c.Totals = Totals{}
	c.Days = [31]DayCounters{}
	c.Hours = [24]HourCounters{}
	c.Responses = [models.TotalResponseCodes]uint64{}
	c.MaxHourHits = 0
	c.DaySites = 0
	c.FirstDay, c.LastDay = 1, 1
}
