package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEmptyInput(t *testing.T) {
	files, errs := Parse("")
	require.Empty(t, files)
	require.Empty(t, errs)
}

func TestParseSingleModifiedFile(t *testing.T) {
	input := "diff --git a/file1.txt b/file1.txt\n" +
		"index 0000000..1111111 100644\n" +
		"--- a/file1.txt\n" +
		"+++ b/file1.txt\n" +
		"@@ -1,3 +1,4 @@ func main() {\n" +
		" ctx one\n" +
		"-removed\n" +
		" ctx two\n" +
		"+added one\n" +
		"+added two\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 1)

	f := files[0]
	require.Equal(t, "file1.txt", f.OldPath)
	require.Equal(t, "file1.txt", f.NewPath)
	require.Equal(t, StatusModified, f.Status)
	require.False(t, f.IsBinary)
	require.Len(t, f.Hunks, 1)

	h := f.Hunks[0]
	require.Equal(t, 1, h.OldStart)
	require.Equal(t, 3, h.OldLines)
	require.Equal(t, 1, h.NewStart)
	require.Equal(t, 4, h.NewLines)
	require.Equal(t, "func main() {", h.FuncCtx)
	require.Len(t, h.Lines, 5)
}

// Recomputing the header counts from the parsed lines must reproduce the
// declared counts exactly, for every file and hunk.
func TestParseRoundTripCounts(t *testing.T) {
	input := "diff --git a/x.go b/x.go\n" +
		"--- a/x.go\n" +
		"+++ b/x.go\n" +
		"@@ -10,4 +10,5 @@\n" +
		" a\n-b\n+B\n+B2\n a\n a\n" +
		"@@ -30 +31 @@\n" +
		"-old\n+new\n" +
		"diff --git a/y.go b/y.go\n" +
		"--- a/y.go\n" +
		"+++ b/y.go\n" +
		"@@ -1,2 +1,1 @@\n" +
		" keep\n-drop\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 2)

	for _, f := range files {
		for _, h := range f.Hunks {
			var ctx, added, removed int
			for _, l := range h.Lines {
				switch l.Origin {
				case Context:
					ctx++
				case Added:
					added++
				case Removed:
					removed++
				}
			}
			require.Equal(t, h.OldLines, ctx+removed)
			require.Equal(t, h.NewLines, ctx+added)
		}
	}
}

func TestParseOmittedLineCount(t *testing.T) {
	input := "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1 +1 @@\n-foo\n+bar\n"
	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 1)
	require.Equal(t, 1, files[0].Hunks[0].OldLines)
	require.Equal(t, 1, files[0].Hunks[0].NewLines)
}

func TestParseNewAndDeletedFiles(t *testing.T) {
	input := "diff --git a/new.txt b/new.txt\n" +
		"new file mode 100644\n" +
		"index 0000000..1111111\n" +
		"--- /dev/null\n" +
		"+++ b/new.txt\n" +
		"@@ -0,0 +1,1 @@\n" +
		"+hello\n" +
		"diff --git a/gone.txt b/gone.txt\n" +
		"deleted file mode 100644\n" +
		"index 6ae58a0..0000000\n" +
		"--- a/gone.txt\n" +
		"+++ /dev/null\n" +
		"@@ -1,1 +0,0 @@\n" +
		"-bye\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 2)
	require.Equal(t, StatusAdded, files[0].Status)
	require.Equal(t, "new.txt", files[0].Path())
	require.Equal(t, StatusDeleted, files[1].Status)
	require.Equal(t, "gone.txt", files[1].Path())
}

func TestParseNewEmptyFilesHaveNoHunks(t *testing.T) {
	input := "diff --git a/file-a b/file-a\n" +
		"new file mode 100644\n" +
		"index 0000000..e69de29\n" +
		"diff --git a/file-b b/file-b\n" +
		"new file mode 100644\n" +
		"index 0000000..e69de29\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 2)
	require.Equal(t, StatusAdded, files[0].Status)
	require.Empty(t, files[0].Hunks)
	require.Empty(t, files[1].Hunks)
}

func TestParseBinaryFile(t *testing.T) {
	input := "diff --git a/img.png b/img.png\n" +
		"index 876e6a1..8c46810 100644\n" +
		"Binary files a/img.png and b/img.png differ\n" +
		"diff --git a/f.txt b/f.txt\n" +
		"--- a/f.txt\n+++ b/f.txt\n" +
		"@@ -1,1 +1,1 @@\n-foo\n+bar\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 2)
	require.True(t, files[0].IsBinary)
	require.Empty(t, files[0].Hunks)
	require.False(t, files[1].IsBinary)
	require.Len(t, files[1].Hunks, 1)
}

func TestParseRename(t *testing.T) {
	input := "diff --git a/old/name.go b/new/name.go\n" +
		"similarity index 97%\n" +
		"rename from old/name.go\n" +
		"rename to new/name.go\n" +
		"index 1234567..89abcde 100644\n" +
		"--- a/old/name.go\n" +
		"+++ b/new/name.go\n" +
		"@@ -5,2 +5,2 @@\n" +
		" same\n-before\n+after\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 1)
	require.Equal(t, StatusRenamed, files[0].Status)
	require.Equal(t, "old/name.go", files[0].OldPath)
	require.Equal(t, "new/name.go", files[0].NewPath)
	// Renamed-and-modified keeps Status Renamed with hunks attached.
	require.Len(t, files[0].Hunks, 1)
}

func TestParseCustomPathPrefixes(t *testing.T) {
	input := "diff --git src/f.txt dst/f.txt\n" +
		"--- src/f.txt\n" +
		"+++ dst/f.txt\n" +
		"@@ -1,1 +1,1 @@\n-foo\n+bar\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 1)
	require.Equal(t, "f.txt", files[0].OldPath)
	require.Equal(t, "f.txt", files[0].NewPath)
}

func TestParseNoNewlineMarker(t *testing.T) {
	input := "diff --git a/v.ts b/v.ts\n" +
		"index 97b017f..bcd28a0 100644\n" +
		"--- a/v.ts\n" +
		"+++ b/v.ts\n" +
		"@@ -1,2 +1,2 @@\n" +
		" keep\n" +
		"-})\n" +
		"\\ No newline at end of file\n" +
		"+});\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 1)
	h := files[0].Hunks[0]
	require.Len(t, h.Lines, 3)
	require.True(t, h.Lines[1].NoNewline)
	require.False(t, h.Lines[2].NoNewline)
}

func TestParseCRLFInput(t *testing.T) {
	input := "diff --git a/file.txt b/file.txt\r\n" +
		"index 0000000..1111111 100644\r\n" +
		"--- a/file.txt\r\n" +
		"+++ b/file.txt\r\n" +
		"@@ -1,1 +1,1 @@\r\n" +
		"-foo\r\n" +
		"+bar\r\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 1)
	require.Equal(t, "file.txt", files[0].OldPath)
}

func TestParseUnmergedPaths(t *testing.T) {
	input := "* Unmerged path new-file\n* Unmerged path new-file-2\n"
	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 2)
	require.Equal(t, StatusUnmerged, files[0].Status)
	require.Equal(t, "new-file", files[0].Path())
	require.Empty(t, files[0].Hunks)
	require.Equal(t, "new-file-2", files[1].Path())
}

// A malformed hunk header count in one file must not take the sibling files
// down with it.
func TestParseMalformedHunkScopedToFile(t *testing.T) {
	input := "diff --git a/bad.txt b/bad.txt\n" +
		"--- a/bad.txt\n" +
		"+++ b/bad.txt\n" +
		"@@ -1,3 +1,99 @@\n" +
		" one\n-two\n two\n+three\n+four\n" +
		"diff --git a/good.txt b/good.txt\n" +
		"--- a/good.txt\n" +
		"+++ b/good.txt\n" +
		"@@ -1,1 +1,1 @@\n-foo\n+bar\n"

	files, errs := Parse(input)
	require.Len(t, errs, 1)
	require.Equal(t, "bad.txt", errs[0].Path)
	require.Contains(t, errs[0].Raw, "@@ -1,3 +1,99 @@")
	require.Len(t, files, 1)
	require.Equal(t, "good.txt", files[0].Path())
}

func TestParseMalformedHunkHeader(t *testing.T) {
	input := "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -a,1 +1,1 @@\n-foo\n+bar\n"
	files, errs := Parse(input)
	require.Empty(t, files)
	require.Len(t, errs, 1)
	require.Equal(t, "f", errs[0].Path)
}

func TestParseSkipsCommitPreamble(t *testing.T) {
	input := "commit 9318f4040de9e6cf60033f21f6ae91a0f2239d38\n" +
		"Author: someone <someone@example.com>\n" +
		"Date:   Wed Feb 19 19:25:37 2025 +0100\n" +
		"\n" +
		"    a subject line\n" +
		"\n" +
		"diff --git a/entry b/entry\n" +
		"--- a/entry\n" +
		"+++ b/entry\n" +
		"@@ -1,1 +1,1 @@\n-x\n+y\n"

	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Len(t, files, 1)
	require.Equal(t, "entry", files[0].Path())
}

func TestHunkTextRoundTrip(t *testing.T) {
	input := "diff --git a/f b/f\n--- a/f\n+++ b/f\n" +
		"@@ -1,2 +1,2 @@ ctx\n a\n-b\n+c\n"
	files, errs := Parse(input)
	require.Empty(t, errs)
	require.Equal(t, "@@ -1,2 +1,2 @@ ctx\n a\n-b\n+c\n", files[0].Hunks[0].Text())
}
