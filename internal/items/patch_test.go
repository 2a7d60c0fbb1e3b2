package items

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gex-tui/gex/internal/diff"
)

const mixedHunkDiff = `diff --git a/app.go b/app.go
index 1111111..2222222 100644
--- a/app.go
+++ b/app.go
@@ -10,4 +10,4 @@ func run() {
 alpha
-old one
-old two
+new one
+new two
 omega
`

func parseOne(t *testing.T, text string) *diff.FileDiff {
	t.Helper()
	files, errs := diff.Parse(text)
	require.Empty(t, errs)
	require.Len(t, files, 1)
	return &files[0]
}

func TestHunkPatchRoundTrips(t *testing.T) {
	fd := parseOne(t, mixedHunkDiff)
	patch := HunkPatch(fd, &fd.Hunks[0])

	// The file header is reconstructed without the index line; the hunk
	// body must survive byte for byte.
	require.True(t, strings.HasPrefix(patch, "diff --git a/app.go b/app.go\n--- a/app.go\n+++ b/app.go\n"))
	body := mixedHunkDiff[strings.Index(mixedHunkDiff, "@@"):]
	require.True(t, strings.HasSuffix(patch, body))

	rt := parseOne(t, patch)
	require.Equal(t, fd.Hunks, rt.Hunks)
}

func TestLinePatchSingleRemoval(t *testing.T) {
	fd := parseOne(t, mixedHunkDiff)
	patch := LinePatch(fd, &fd.Hunks[0], 1) // "-old one"

	// The other removal stays as context; the additions are dropped, so the
	// patch applies against the hunk's old content.
	require.Contains(t, patch, "@@ -10,4 +10,3 @@ func run() {")
	require.Contains(t, patch, "-old one\n")
	require.Contains(t, patch, " old two\n")
	require.NotContains(t, patch, "new one")
	require.NotContains(t, patch, "new two")
}

func TestLinePatchSingleAddition(t *testing.T) {
	fd := parseOne(t, mixedHunkDiff)
	patch := LinePatch(fd, &fd.Hunks[0], 3) // "+new one"

	require.Contains(t, patch, "@@ -10,4 +10,5 @@ func run() {")
	require.Contains(t, patch, "+new one\n")
	require.Contains(t, patch, " old one\n")
	require.Contains(t, patch, " old two\n")
	require.NotContains(t, patch, "new two")

	// Reparsing the synthesized patch must succeed with consistent counts.
	lp := parseOne(t, patch)
	require.Len(t, lp.Hunks, 1)
	require.Equal(t, 4, lp.Hunks[0].OldLines)
	require.Equal(t, 5, lp.Hunks[0].NewLines)
}

func TestLinePatchPreservesNoNewline(t *testing.T) {
	const text = `diff --git a/f b/f
index 1111111..2222222 100644
--- a/f
+++ b/f
@@ -1 +1 @@
-old
\ No newline at end of file
+new
\ No newline at end of file
`
	fd := parseOne(t, text)
	patch := LinePatch(fd, &fd.Hunks[0], 1) // "+new"
	require.Contains(t, patch, "+new\n\\ No newline at end of file\n")
}
