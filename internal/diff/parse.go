package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse splits diff text into per-file structures. Empty input yields zero
// files and zero errors. A file whose hunk bodies do not match their headers
// yields a ParseError scoped to that file; the remaining files still parse.
func Parse(text string) ([]FileDiff, []*ParseError) {
	p := &parser{lines: splitLines(text)}
	return p.parse()
}

type parser struct {
	lines []string
	pos   int
}

// splitLines keeps CRLF input tolerable by trimming a trailing \r per line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range raw {
		raw[i] = strings.TrimSuffix(l, "\r")
	}
	return raw
}

func (p *parser) eof() bool       { return p.pos >= len(p.lines) }
func (p *parser) cur() string     { return p.lines[p.pos] }
func (p *parser) advance() string { l := p.lines[p.pos]; p.pos++; return l }

func (p *parser) atFileStart() bool {
	if p.eof() {
		return false
	}
	l := p.cur()
	return strings.HasPrefix(l, "diff ") || strings.HasPrefix(l, "* Unmerged path ")
}

func (p *parser) parse() ([]FileDiff, []*ParseError) {
	var files []FileDiff
	var errs []*ParseError

	// Skip any preamble (commit headers, stat summaries) up to the first
	// file section. `git show --format=` and `git stash show -p` still
	// occasionally emit leading noise.
	for !p.eof() && !p.atFileStart() {
		p.advance()
	}

	for p.atFileStart() {
		start := p.pos
		fd, err := p.parseFile()
		if err != nil {
			p.skipToNextFile()
			errs = append(errs, &ParseError{
				Path:   fd.Path(),
				Raw:    strings.Join(p.lines[start:p.pos], "\n"),
				Reason: err.Error(),
			})
			continue
		}
		files = append(files, fd)
	}
	return files, errs
}

// skipToNextFile abandons the current file section after an error.
func (p *parser) skipToNextFile() {
	for !p.eof() && !p.atFileStart() {
		p.advance()
	}
}

func (p *parser) parseFile() (FileDiff, error) {
	var fd FileDiff

	header := p.advance()
	switch {
	case strings.HasPrefix(header, "* Unmerged path "):
		path := strings.TrimPrefix(header, "* Unmerged path ")
		return FileDiff{OldPath: path, NewPath: path, Status: StatusUnmerged}, nil
	case strings.HasPrefix(header, "diff --cc "):
		path := strings.TrimPrefix(header, "diff --cc ")
		fd.OldPath, fd.NewPath = path, path
		fd.Status = StatusUnmerged
		// Combined-diff bodies use a two-column origin format this view
		// does not address hunk-wise; skip to the next file section.
		p.skipToNextFile()
		return fd, nil
	default:
		fd.OldPath, fd.NewPath = parseGitHeaderPaths(header)
	}

	// Extended header lines up to the first hunk or the next file.
	for !p.eof() && !p.atFileStart() && !strings.HasPrefix(p.cur(), "@@") {
		l := p.advance()
		switch {
		case strings.HasPrefix(l, "new file"):
			fd.Status = StatusAdded
		case strings.HasPrefix(l, "deleted file"):
			fd.Status = StatusDeleted
		case strings.HasPrefix(l, "rename from"):
			fd.Status = StatusRenamed
		case strings.HasPrefix(l, "copy from"):
			fd.Status = StatusCopied
		case strings.HasPrefix(l, "Binary files ") || l == "GIT binary patch":
			fd.IsBinary = true
		case strings.HasPrefix(l, "--- "):
			if path, ok := stripPathPrefix(strings.TrimPrefix(l, "--- ")); ok {
				fd.OldPath = path
			}
		case strings.HasPrefix(l, "+++ "):
			if path, ok := stripPathPrefix(strings.TrimPrefix(l, "+++ ")); ok {
				fd.NewPath = path
			}
		}
		// similarity/dissimilarity index, index, mode lines: no state change.
	}

	for !p.eof() && strings.HasPrefix(p.cur(), "@@") {
		hunk, err := p.parseHunk()
		if err != nil {
			return fd, err
		}
		fd.Hunks = append(fd.Hunks, hunk)
	}
	return fd, nil
}

// parseGitHeaderPaths extracts old/new paths from a "diff --git A B" line,
// tolerating custom path prefixes (diff.srcPrefix/dstPrefix) beyond a/ b/.
func parseGitHeaderPaths(header string) (oldPath, newPath string) {
	rest := strings.TrimPrefix(header, "diff --git ")

	// Common case: "a/old b/new". Splitting on " b/" is robust against
	// paths containing spaces.
	if strings.HasPrefix(rest, "a/") {
		if i := strings.LastIndex(rest, " b/"); i >= 0 {
			return rest[len("a/"):i], rest[i+len(" b/"):]
		}
	}

	// Custom prefixes: fall back to a whitespace split and strip the first
	// path component of each side when both carry one.
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return rest, rest
	}
	o, oOK := stripPathPrefix(fields[0])
	n, nOK := stripPathPrefix(fields[1])
	if oOK && nOK {
		return o, n
	}
	return fields[0], fields[1]
}

// stripPathPrefix removes a single leading component ("a/", "src/", …) from
// a diff header path. "/dev/null" reports no path at all.
func stripPathPrefix(p string) (string, bool) {
	p = strings.TrimSuffix(p, "\t")
	if p == "/dev/null" {
		return "", false
	}
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[i+1:], true
	}
	return p, false
}

func (p *parser) parseHunk() (Hunk, error) {
	header := p.advance()
	hunk, err := parseHunkHeader(header)
	if err != nil {
		return hunk, err
	}

	var ctx, added, removed int
	for !p.eof() {
		l := p.cur()
		if l == "" {
			break
		}
		switch Origin(l[0]) {
		case Context:
			ctx++
		case Added:
			added++
		case Removed:
			removed++
		case '\\':
			// "\ No newline at end of file" annotates the previous line.
			if n := len(hunk.Lines); n > 0 {
				hunk.Lines[n-1].NoNewline = true
			}
			p.advance()
			continue
		default:
			// Start of the next hunk/file or trailing garbage.
			goto done
		}
		hunk.Lines = append(hunk.Lines, Line{Origin: Origin(l[0]), Text: l[1:]})
		p.advance()
	}
done:
	if ctx+removed != hunk.OldLines || ctx+added != hunk.NewLines {
		return hunk, fmt.Errorf("hunk %q declares -%d +%d lines but body has -%d +%d",
			header, hunk.OldLines, hunk.NewLines, ctx+removed, ctx+added)
	}
	return hunk, nil
}

// parseHunkHeader parses "@@ -old[,count] +new[,count] @@[ func ctx]".
// An omitted count means 1.
func parseHunkHeader(header string) (Hunk, error) {
	var h Hunk
	rest, ok := strings.CutPrefix(header, "@@ -")
	if !ok {
		return h, fmt.Errorf("malformed hunk header %q", header)
	}
	ranges, fnCtx, ok := strings.Cut(rest, " @@")
	if !ok {
		return h, fmt.Errorf("malformed hunk header %q", header)
	}
	oldPart, newPart, ok := strings.Cut(ranges, " +")
	if !ok {
		return h, fmt.Errorf("malformed hunk header %q", header)
	}

	var err error
	if h.OldStart, h.OldLines, err = parseRange(oldPart); err != nil {
		return h, fmt.Errorf("malformed hunk header %q: %w", header, err)
	}
	if h.NewStart, h.NewLines, err = parseRange(newPart); err != nil {
		return h, fmt.Errorf("malformed hunk header %q: %w", header, err)
	}
	h.FuncCtx = strings.TrimPrefix(fnCtx, " ")
	return h, nil
}

func parseRange(s string) (start, count int, err error) {
	count = 1
	startStr, countStr, hasCount := strings.Cut(s, ",")
	if start, err = strconv.Atoi(startStr); err != nil {
		return 0, 0, fmt.Errorf("invalid line number %q", startStr)
	}
	if hasCount {
		if count, err = strconv.Atoi(countStr); err != nil {
			return 0, 0, fmt.Errorf("invalid line count %q", countStr)
		}
	}
	return start, count, nil
}
