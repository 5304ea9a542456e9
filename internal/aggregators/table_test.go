package aggregators

import (
	"testing"

	"weblog-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketOf_StableAndInRange(t *testing.T) {
	t.Parallel()

	keys := []string{"", "a", "ab", "abc", "abcd", "/index.html", "1.2.3.4", "\xe9t\xe9"}
	for _, k := range keys {
		b := bucketOf(k)
		assert.Less(t, b, uint32(models.MaxHashBucket), "key %q", k)
		assert.Equal(t, b, bucketOf(k), "key %q", k)
	}
	assert.Equal(t, uint32(0), bucketOf(""))
}

func TestTable_InsertAndFind_GroupedIsSeparate(t *testing.T) {
	t.Parallel()

	tbl := newTable[URLNode]("urls", 0, nil)

	reg, err := tbl.insert("/a", models.KindRegular)
	require.NoError(t, err)
	reg.Count = 3

	assert.Same(t, reg, tbl.find("/a", models.KindRegular))
	assert.Same(t, reg, tbl.find("/a", models.KindHidden), "hidden updates merge into regular nodes")
	assert.Nil(t, tbl.find("/a", models.KindGrouped))

	grp, err := tbl.insert("/a", models.KindGrouped)
	require.NoError(t, err)
	assert.Same(t, grp, tbl.find("/a", models.KindGrouped))
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_Insert_HideRule(t *testing.T) {
	t.Parallel()

	tbl := newTable[SiteNode]("sites_monthly", 0, func(k string) bool { return k == "crawler.example" })

	n, err := tbl.insert("crawler.example", models.KindRegular)
	require.NoError(t, err)
	assert.Equal(t, models.KindHidden, n.Kind)

	g, err := tbl.insert("crawler.example", models.KindGrouped)
	require.NoError(t, err)
	assert.Equal(t, models.KindGrouped, g.Kind, "grouped nodes are never hidden")

	r, err := tbl.insert("www.example", models.KindRegular)
	require.NoError(t, err)
	assert.Equal(t, models.KindRegular, r.Kind)
}

func TestTable_Insert_Limit(t *testing.T) {
	t.Parallel()

	tbl := newTable[AgentNode]("agents", 1, nil)
	_, err := tbl.insert("one", models.KindRegular)
	require.NoError(t, err)

	_, err = tbl.insert("two", models.KindRegular)
	assert.ErrorIs(t, err, ErrTableFull)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_SortedAndReset(t *testing.T) {
	t.Parallel()

	tbl := newTable[ReferrerNode]("referrers", 0, nil)
	for key, count := range map[string]uint64{"b": 5, "a": 5, "c": 9, "d": 1} {
		n, err := tbl.insert(key, models.KindRegular)
		require.NoError(t, err)
		n.Count = count
	}

	var keys []string
	for _, n := range tbl.Sorted() {
		keys = append(keys, n.Key)
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, keys)

	visited := 0
	tbl.Each(func(*ReferrerNode) { visited++ })
	assert.Equal(t, 4, visited)

	tbl.Reset()
	assert.Equal(t, 0, tbl.Len())
	assert.Nil(t, tbl.find("c", models.KindRegular))
}
