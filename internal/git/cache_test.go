package git

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// showCountingService returns different Show output on every call, the way
// a symbolic rev does once the ref it names moves.
type showCountingService struct {
	Service
	calls int
}

func (s *showCountingService) Show(string) (string, error) {
	s.calls++
	return fmt.Sprintf("diff v%d", s.calls), nil
}

func TestCachedShowSymbolicRevDelegatesEveryCall(t *testing.T) {
	inner := &showCountingService{}
	c := NewCachedService(inner)

	for _, rev := range []string{"HEAD", "main", "v1.0", "abc1234"} {
		inner.calls = 0

		out, err := c.Show(rev)
		require.NoError(t, err)
		require.Equal(t, "diff v1", out, "rev %s", rev)

		out, err = c.Show(rev)
		require.NoError(t, err)
		require.Equal(t, "diff v2", out, "rev %s", rev)
	}
}

func TestCachedShowFullHashIsCached(t *testing.T) {
	inner := &showCountingService{}
	c := NewCachedService(inner)
	hash := strings.Repeat("ab", 20)

	out, err := c.Show(hash)
	require.NoError(t, err)
	require.Equal(t, "diff v1", out)

	out, err = c.Show(hash)
	require.NoError(t, err)
	require.Equal(t, "diff v1", out)
	require.Equal(t, 1, inner.calls)
}

func TestIsObjectName(t *testing.T) {
	require.True(t, isObjectName(strings.Repeat("0", 40)))
	require.True(t, isObjectName(strings.Repeat("f", 64)))
	require.False(t, isObjectName("HEAD"))
	require.False(t, isObjectName(strings.Repeat("a", 39)))
	require.False(t, isObjectName(strings.Repeat("a", 39)+"G"))
}
