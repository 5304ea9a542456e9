package aggregators

import (
	"errors"
	"sort"

	"weblog-analyzer/internal/models"
)

// ErrTableFull is returned when a table reached its node limit. The update is skipped.
var ErrTableFull = errors.New("table full")

// Node is the part shared by every table entry.
type Node struct {
	Key   string
	Kind  models.ObjectKind
	Count uint64

	next int32 // index+1 of the next node in the bucket chain, 0 ends the chain
}

func (n *Node) base() *Node { return n }

type tableNode[T any] interface {
	*T
	base() *Node
}

// Table is an open hashing table with a fixed number of buckets. New nodes are linked at the head
// of their bucket chain and nodes are never removed individually.
type Table[T any, P tableNode[T]] struct {
	name    string
	buckets [models.MaxHashBucket]int32
	nodes   []P
	limit   int
	hidden  func(key string) bool
}

func newTable[T any, P tableNode[T]](name string, limit int, hidden func(string) bool) *Table[T, P] {
	if hidden == nil {
		hidden = func(string) bool { return false }
	}
	return &Table[T, P]{name: name, limit: limit, hidden: hidden}
}

// compatible reports whether an update of kind may merge into a node of kind existing.
// Grouped nodes only merge with grouped updates; regular and hidden nodes merge freely.
func compatible(kind, existing models.ObjectKind) bool {
	return kind == existing || (kind != models.KindGrouped && existing != models.KindGrouped)
}

func (t *Table[T, P]) Name() string { return t.name }

func (t *Table[T, P]) Len() int { return len(t.nodes) }

// find returns the first node with key whose kind is compatible with kind.
func (t *Table[T, P]) find(key string, kind models.ObjectKind) P {
	for i := t.buckets[bucketOf(key)]; i != 0; {
		n := t.nodes[i-1]
		b := n.base()
		if b.Key == key && compatible(kind, b.Kind) {
			return n
		}
		i = b.next
	}
	return nil
}

// findFirst returns the first node with key that satisfies accept.
func (t *Table[T, P]) findFirst(key string, accept func(*Node) bool) P {
	for i := t.buckets[bucketOf(key)]; i != 0; {
		n := t.nodes[i-1]
		b := n.base()
		if b.Key == key && accept(b) {
			return n
		}
		i = b.next
	}
	return nil
}

// insert links a new node for key. Grouped nodes stay grouped, other nodes become hidden when the
// hide rule matches and otherwise keep kind.
func (t *Table[T, P]) insert(key string, kind models.ObjectKind) (P, error) {
	if t.limit > 0 && len(t.nodes) >= t.limit {
		return nil, ErrTableFull
	}
	n := P(new(T))
	b := n.base()
	b.Key = key
	b.Kind = kind
	if kind != models.KindGrouped && t.hidden(key) {
		b.Kind = models.KindHidden
	}
	bucket := bucketOf(key)
	b.next = t.buckets[bucket]
	t.nodes = append(t.nodes, n)
	t.buckets[bucket] = int32(len(t.nodes))
	return n, nil
}

// Each visits nodes bucket by bucket, most recently inserted first within a bucket.
func (t *Table[T, P]) Each(fn func(P)) {
	for _, head := range t.buckets {
		for i := head; i != 0; {
			n := t.nodes[i-1]
			fn(n)
			i = n.base().next
		}
	}
}

// Sorted returns the nodes ordered by count descending, ties by key ascending.
// The slice shares nodes with the table and must be treated as read-only.
func (t *Table[T, P]) Sorted() []P {
	out := make([]P, len(t.nodes))
	copy(out, t.nodes)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].base(), out[j].base()
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Key < b.Key
	})
	return out
}

// Reset drops every node.
func (t *Table[T, P]) Reset() {
	t.buckets = [models.MaxHashBucket]int32{}
	t.nodes = nil
}
