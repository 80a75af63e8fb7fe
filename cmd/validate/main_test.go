package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/sounding-archiver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodReport = "15614 LBSF Sofia Observations\n946.0 588 1.2\n" + domain.DefaultStopMarker + ": 9.87\n"

func writeArchive(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}
	return dir
}

func testOptions(dir string) options {
	return options{dir: dir, prefix: "wyoming", marker: domain.DefaultStopMarker}
}

func TestRun_ValidArchive(t *testing.T) {
	dir := writeArchive(t, map[string]string{
		"wyoming-22-01-2026.txt": goodReport,
		"wyoming-23-01-2026.txt": goodReport,
	})
	o := testOptions(dir)
	o.start, o.end = "2026-01-22", "2026-01-23"

	var out bytes.Buffer
	code := run(&out, o)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "All validations passed.")
	assert.Contains(t, out.String(), "Reports: 2")
}

func TestRun_BadFilename(t *testing.T) {
	dir := writeArchive(t, map[string]string{
		"wyoming-2026-01-22.txt": goodReport,
		"wyoming-31-02-2026.txt": goodReport,
	})

	var out bytes.Buffer
	code := run(&out, testOptions(dir))

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "wyoming-2026-01-22.txt: does not match")
	assert.Contains(t, out.String(), `wyoming-31-02-2026.txt: invalid date "31-02-2026"`)
}

func TestRun_IncompleteReport(t *testing.T) {
	dir := writeArchive(t, map[string]string{
		"wyoming-22-01-2026.txt": "Can't get 15614 LBSF Sofia Observations.\n",
	})

	var out bytes.Buffer
	code := run(&out, testOptions(dir))

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "wyoming-22-01-2026.txt: no valid sounding")
}

func TestRun_UncleanedReport(t *testing.T) {
	dir := writeArchive(t, map[string]string{
		"wyoming-22-01-2026.txt": "<PRE>\n" + goodReport + "trailing\n",
	})

	var out bytes.Buffer
	code := run(&out, testOptions(dir))

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "not in cleaned form")
}

func TestRun_MissingDay(t *testing.T) {
	dir := writeArchive(t, map[string]string{
		"wyoming-22-01-2026.txt": goodReport,
		"wyoming-24-01-2026.txt": goodReport,
	})
	o := testOptions(dir)
	o.start, o.end = "2026-01-22", "2026-01-24"

	var out bytes.Buffer
	code := run(&out, o)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "2026-01-23: no report")
	assert.NotContains(t, out.String(), "2026-01-22: no report")
}

func TestRun_MissingDirectory(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, testOptions(filepath.Join(t.TempDir(), "missing")))

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FATAL: load archive")
}

func TestRun_HalfRange(t *testing.T) {
	dir := writeArchive(t, map[string]string{"wyoming-22-01-2026.txt": goodReport})
	o := testOptions(dir)
	o.start = "2026-01-22"

	var out bytes.Buffer
	code := run(&out, o)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "-start and -end must be given together")
}
