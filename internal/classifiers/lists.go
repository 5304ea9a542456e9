package classifiers

import (
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/configs"
)

// EntityLists holds one pattern list per entity kind.
type EntityLists struct {
	Sites     PatternList
	URLs      PatternList
	Referrers PatternList
	Agents    PatternList
	Users     PatternList
}

// GroupLists holds one group list per entity kind.
type GroupLists struct {
	Sites     GroupList
	URLs      GroupList
	Referrers GroupList
	Agents    GroupList
	Users     GroupList
}

// Lists bundles the Hide, Ignore, Include and Group lists.
type Lists struct {
	Hide         EntityLists
	Ignore       EntityLists
	Include      EntityLists
	Group        GroupLists
	HideAllSites bool
}

func NewLists(cfg configs.ListsConfig, hideAllSites bool) *Lists {
	return &Lists{
		Hide:         newEntityLists(cfg.Hide),
		Ignore:       newEntityLists(cfg.Ignore),
		Include:      newEntityLists(cfg.Include),
		Group:        newGroupLists(cfg.Group),
		HideAllSites: hideAllSites,
	}
}

func newEntityLists(cfg configs.EntityPatterns) EntityLists {
	return EntityLists{
		Sites:     NewPatternList(cfg.Sites),
		URLs:      NewPatternList(cfg.URLs),
		Referrers: NewPatternList(cfg.Referrers),
		Agents:    NewPatternList(cfg.Agents),
		Users:     NewPatternList(cfg.Users),
	}
}

func newGroupLists(cfg configs.EntityGroups) GroupLists {
	conv := func(entries []configs.GroupEntry) GroupList {
		out := make([]GroupPattern, 0, len(entries))
		for _, e := range entries {
			out = append(out, GroupPattern{Pattern: e.Pattern, Name: e.Name})
		}
		return NewGroupList(out)
	}
	return GroupLists{
		Sites:     conv(cfg.Sites),
		URLs:      conv(cfg.URLs),
		Referrers: conv(cfg.Referrers),
		Agents:    conv(cfg.Agents),
		Users:     conv(cfg.Users),
	}
}

// Included reports whether any Include list matches the record.
func (l *Lists) Included(rec *models.LogRecord) bool {
	return l.Include.Sites.Contains(rec.Hostname) ||
		l.Include.URLs.Contains(rec.URL) ||
		l.Include.Referrers.Contains(rec.Referrer) ||
		l.Include.Agents.Contains(rec.Agent) ||
		l.Include.Users.Contains(rec.Ident)
}

// Ignored reports whether the record must be dropped. Include wins over Ignore.
// Ignore lists are checked in the order sites, URLs, agents, referrers, users.
func (l *Lists) Ignored(rec *models.LogRecord) bool {
	if l.Included(rec) {
		return false
	}
	return l.Ignore.Sites.Contains(rec.Hostname) ||
		l.Ignore.URLs.Contains(rec.URL) ||
		l.Ignore.Agents.Contains(rec.Agent) ||
		l.Ignore.Referrers.Contains(rec.Referrer) ||
		l.Ignore.Users.Contains(rec.Ident)
}

// SiteHidden reports whether a new regular site node is classified Hidden.
func (l *Lists) SiteHidden(host string) bool {
	return l.HideAllSites || l.Hide.Sites.Contains(host)
}
