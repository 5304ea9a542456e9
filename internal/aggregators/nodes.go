package aggregators

// SiteNode tracks a client host. Visits and Stamp drive session detection; LastURL is the last page
// the site requested and closes its visit on the URL table.
type SiteNode struct {
	Node
	Files   uint64
	Xfer    uint64
	Visits  uint64
	Stamp   int64
	LastURL string
}

type URLNode struct {
	Node
	Xfer  uint64
	Entry uint64
	Exit  uint64
}

type ReferrerNode struct {
	Node
}

type AgentNode struct {
	Node
}

type SearchNode struct {
	Node
}

// IdentNode tracks an authenticated user.
type IdentNode struct {
	Node
	Files  uint64
	Xfer   uint64
	Visits uint64
	Stamp  int64
}

type (
	SiteTable     = Table[SiteNode, *SiteNode]
	URLTable      = Table[URLNode, *URLNode]
	ReferrerTable = Table[ReferrerNode, *ReferrerNode]
	AgentTable    = Table[AgentNode, *AgentNode]
	SearchTable   = Table[SearchNode, *SearchNode]
	IdentTable    = Table[IdentNode, *IdentNode]
)

// Hit carries the contribution of one record to a site or ident node.
type Hit struct {
	Hits  uint64
	Files uint64
	Xfer  uint64
	Stamp int64
	URL   string // normalized URL of the record
	Page  bool   // whether URL counts as a page
}
