package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinymail/defsfilter/internal/scanner"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIsHeaderName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"tny-folder.h", true},
		{"widget.html", true},
		{"tny-list.h.in", true},
		{"a.h", true},
		{".h", true},
		{".hidden", true},
		{".hdecl", true},
		{"tny-folder.c", false},
		{"Makefile", false},
		{"h", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanner.IsHeaderName(tt.name))
		})
	}
}

func TestScanHeaders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "libtinymail", "tny-folder.h"),
		"#include <glib.h>\n\nstruct _TnyFolderIface {\n\tGTypeInterface parent;\n};\n")
	writeFile(t, filepath.Join(root, "libtinymail", "deep", "er", "tny-list.h"),
		"  struct _TnyListIface\r\n")
	writeFile(t, filepath.Join(root, "docs", "widget.html"),
		"struct _TnyWidgetIface {\n")
	writeFile(t, filepath.Join(root, "libtinymail", "tny-folder.c"),
		"struct _TnyIgnoredIface {\n")
	writeFile(t, filepath.Join(root, "libtinymail", "tny-account.h"),
		"typedef struct _TnyAccountIface TnyAccountIface;\nstruct _TnyAccount {\n")
	writeFile(t, filepath.Join(root, "bin.h"), "\x00\xff\xfe struct _TnyBinIface\n")

	names, err := scanner.ScanHeaders(root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Folder", "List", "Widget"}, names.Sorted())
}

func TestScanHeadersFooIface(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tny-foo.h"), "struct _TnyFooIface {")

	names, err := scanner.ScanHeaders(root, nil)
	require.NoError(t, err)
	assert.True(t, names.Has("Foo"))
}

func TestScanHeadersDotPrefixedNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hdecl"), "struct _TnyDotIface {\n")
	writeFile(t, filepath.Join(root, "sub", ".h"), "struct _TnyBareIface {\n")

	names, err := scanner.ScanHeaders(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bare", "Dot"}, names.Sorted())
}

func TestScanHeadersMissingRoot(t *testing.T) {
	_, err := scanner.ScanHeaders(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}
