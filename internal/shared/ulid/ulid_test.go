package ulid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOf(t *testing.T) {
	t.Parallel()

	before := time.Now().Add(-time.Second)
	id := NewULID()
	got, err := TimeOf(id)
	require.NoError(t, err)
	assert.True(t, got.After(before))

	_, err = TimeOf("not-a-ulid")
	assert.Error(t, err)
}
