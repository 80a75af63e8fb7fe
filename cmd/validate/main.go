// Command validate checks an archive directory written by the archiver. It
// verifies filenames, report content, and day coverage for a date range.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -dir wyoming \
//	  -start 2026-01-22 -end 2026-01-27
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/couchcryptid/sounding-archiver/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// options are the command-line settings.
type options struct {
	dir    string
	prefix string
	marker string
	start  string
	end    string
}

func main() {
	var o options
	flag.StringVar(&o.dir, "dir", "", "archive directory to validate")
	flag.StringVar(&o.prefix, "prefix", "wyoming", "report filename prefix")
	flag.StringVar(&o.marker, "marker", domain.DefaultStopMarker, "stop marker each report must end with")
	flag.StringVar(&o.start, "start", "", "first expected day, YYYY-MM-DD (optional)")
	flag.StringVar(&o.end, "end", "", "last expected day, YYYY-MM-DD (optional)")
	flag.Parse()

	if o.dir == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, o))
}

func run(out io.Writer, o options) int {
	fmt.Fprintln(out, "=== Sounding Archive Validation ===")

	files, err := loadArchive(o.dir)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load archive: %v\n", err)
		return 1
	}

	nameRe := regexp.MustCompile(`^` + regexp.QuoteMeta(o.prefix) + `-(\d{2}-\d{2}-\d{4})\.txt$`)

	dated, names := validateFilenames(files, nameRe, o.prefix)
	phases := []*phase{
		names,
		validateContent(files, o.marker),
	}

	if o.start != "" || o.end != "" {
		cov, err := validateCoverage(dated, o.start, o.end)
		if err != nil {
			fmt.Fprintf(out, "FATAL: %v\n", err)
			return 1
		}
		phases = append(phases, cov)
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-36s %s\n", p.name, status)
	}

	fmt.Fprintf(out, "\nReports: %d\n", len(files))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// archiveFile is a regular file from the archive directory.
type archiveFile struct {
	name string
	text string
}

func loadArchive(dir string) ([]archiveFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []archiveFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, archiveFile{name: e.Name(), text: string(data)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files, nil
}

// ── Phase 1: Filenames ──
// Every file must be named <prefix>-DD-MM-YYYY.txt with a real calendar date.

func validateFilenames(files []archiveFile, nameRe *regexp.Regexp, prefix string) (map[string]bool, *phase) {
	p := &phase{name: "Phase 1: Filenames"}
	dated := make(map[string]bool, len(files))

	for _, f := range files {
		m := nameRe.FindStringSubmatch(f.name)
		if m == nil {
			p.errorf("%s: does not match %s-DD-MM-YYYY.txt", f.name, prefix)
			continue
		}
		d, err := time.Parse("02-01-2006", m[1])
		if err != nil {
			p.errorf("%s: invalid date %q", f.name, m[1])
			continue
		}
		if domain.Filename(prefix, d) != f.name {
			p.errorf("%s: expected canonical name %s", f.name, domain.Filename(prefix, d))
			continue
		}
		dated[d.Format(domain.DateLayout)] = true
	}
	return dated, p
}

// ── Phase 2: Content ──
// Each report must be a complete sounding that the cleaner leaves unchanged.

func validateContent(files []archiveFile, marker string) *phase {
	p := &phase{name: "Phase 2: Report Content"}

	for _, f := range files {
		if err := domain.Validate(f.text, marker); err != nil {
			p.errorf("%s: %v", f.name, err)
			continue
		}
		cleaned, _ := domain.Clean(f.text, marker)
		if cleaned != f.text {
			p.errorf("%s: not in cleaned form (markup, blank lines, or text after the stop marker)", f.name)
		}
	}
	return p
}

// ── Phase 3: Coverage ──
// Every day in the requested range must have a report.

func validateCoverage(dated map[string]bool, start, end string) (*phase, error) {
	p := &phase{name: "Phase 3: Day Coverage"}

	if start == "" || end == "" {
		return nil, fmt.Errorf("-start and -end must be given together")
	}
	s, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid -start %q", start)
	}
	e, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid -end %q", end)
	}

	for _, d := range domain.Days(s, e) {
		key := d.Format(domain.DateLayout)
		if !dated[key] {
			p.errorf("%s: no report", key)
		}
	}
	return p, nil
}
