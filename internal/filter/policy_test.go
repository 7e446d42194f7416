package filter_test

import (
	"path/filepath"
	"testing"

	"github.com/temirov/codedump/internal/config"
	"github.com/temirov/codedump/internal/filter"
	"github.com/temirov/codedump/internal/types"
	"github.com/temirov/codedump/internal/utils"
)

const testRoot = "/work/project"

func fileEntry(relativePath string) types.EntryDescriptor {
	name := filepath.Base(relativePath)
	return types.EntryDescriptor{
		AbsolutePath: filepath.Join(testRoot, relativePath),
		RelativePath: relativePath,
		Name:         name,
		Extension:    utils.FileExtension(name),
	}
}

func directoryEntry(relativePath string) types.EntryDescriptor {
	entry := fileEntry(relativePath)
	entry.IsDirectory = true
	entry.Extension = ""
	return entry
}

func newTestPolicy(extensions []string, patterns ...string) *filter.Policy {
	filterConfig := types.FilterConfig{
		RootDirectory:      testRoot,
		OutputArtifactPath: filepath.Join(testRoot, "out", "project.txt"),
		AllowedExtensions:  extensions,
	}
	return filter.NewPolicy(filterConfig, config.NewPatternSet(patterns...), nil)
}

// TestDecideCascade verifies each rule of the exclusion cascade.
func TestDecideCascade(t *testing.T) {
	testCases := []struct {
		name       string
		extensions []string
		patterns   []string
		entry      types.EntryDescriptor
		expected   types.Verdict
	}{
		{name: "plain file included", entry: fileEntry("a.py"), expected: types.VerdictInclude},
		{name: "output artifact excluded", entry: fileEntry("out/project.txt"), expected: types.VerdictExclude},
		{name: "hidden directory excluded", entry: directoryEntry(".hidden"), expected: types.VerdictExclude},
		{name: "hidden file kept", entry: fileEntry(".env"), expected: types.VerdictInclude},
		{name: "git directory excluded", entry: directoryEntry(".git"), expected: types.VerdictExclude},
		{name: "cache directory excluded", entry: directoryEntry("node_modules_cache"), expected: types.VerdictExclude},
		{name: "cache file excluded case insensitive", entry: fileEntry("src/MyCACHE.go"), expected: types.VerdictExclude},
		{name: "digit run file excluded", entry: fileEntry("chunk-12345.js"), expected: types.VerdictExclude},
		{name: "four digits kept", entry: fileEntry("report-2024.md"), expected: types.VerdictInclude},
		{name: "digit run directory kept", entry: directoryEntry("build-20240101"), expected: types.VerdictInclude},
		{name: "unicode digit run excluded", entry: fileEntry("file١٢٣٤٥.txt"), expected: types.VerdictExclude},
		{name: "directory pattern excludes directory", patterns: []string{"build/"}, entry: directoryEntry("build"), expected: types.VerdictExclude},
		{name: "directory pattern excludes nested segment", patterns: []string{"build/"}, entry: directoryEntry("pkg/build"), expected: types.VerdictExclude},
		{name: "anchored pattern excludes root entry", patterns: []string{"/dist"}, entry: directoryEntry("dist"), expected: types.VerdictExclude},
		{name: "wildcard pattern excludes file", patterns: []string{"*.log"}, entry: fileEntry("logs/app.log"), expected: types.VerdictExclude},
		{name: "star crosses separators", patterns: []string{"docs*guide.md"}, entry: fileEntry("docs/a/guide.md"), expected: types.VerdictExclude},
		{name: "question mark single character", patterns: []string{"?.txt"}, entry: fileEntry("a.txt"), expected: types.VerdictExclude},
		{name: "question mark rejects longer", patterns: []string{"?.txt"}, extensions: nil, entry: fileEntry("ab.txt"), expected: types.VerdictInclude},
		{name: "character class", patterns: []string{"[ab].go"}, entry: fileEntry("b.go"), expected: types.VerdictExclude},
		{name: "negated character class", patterns: []string{"[!ab].go"}, entry: fileEntry("b.go"), expected: types.VerdictInclude},
		{name: "braces are literal", patterns: []string{"{a,b}.go"}, entry: fileEntry("a.go"), expected: types.VerdictInclude},
		{name: "braces match literally", patterns: []string{"{a,b}.go"}, entry: fileEntry("{a,b}.go"), expected: types.VerdictExclude},
		{name: "class with several ranges", patterns: []string{"[a-zA-Z]*.log"}, entry: fileEntry("Debug.log"), expected: types.VerdictExclude},
		{name: "class with range and mixed members", patterns: []string{"[0-9a-f].txt"}, entry: fileEntry("b.txt"), expected: types.VerdictExclude},
		{name: "class with range and mixed members rejects outsider", patterns: []string{"[0-9a-f].txt"}, entry: fileEntry("g.txt"), expected: types.VerdictInclude},
		{name: "leading bracket is a class member", patterns: []string{"[]x].txt"}, entry: fileEntry("].txt"), expected: types.VerdictExclude},
		{name: "caret is a class member", patterns: []string{"[^a].txt"}, entry: fileEntry("^.txt"), expected: types.VerdictExclude},
		{name: "caret does not negate", patterns: []string{"[^a].txt"}, entry: fileEntry("b.txt"), expected: types.VerdictInclude},
		{name: "negated class with several members", patterns: []string{"[!a-cx].txt"}, entry: fileEntry("d.txt"), expected: types.VerdictExclude},
		{name: "negated class with several members rejects member", patterns: []string{"[!a-cx].txt"}, entry: fileEntry("x.txt"), expected: types.VerdictInclude},
		{name: "reversed range matches nothing", patterns: []string{"[z-a].txt"}, entry: fileEntry("z.txt"), expected: types.VerdictInclude},
		{name: "unclosed bracket is literal", patterns: []string{"a[b"}, entry: fileEntry("a[b"), expected: types.VerdictExclude},
		{name: "multi segment pattern", patterns: []string{"src/gen"}, entry: directoryEntry("src/gen"), expected: types.VerdictExclude},
		{name: "children of anchored directory", patterns: []string{"vendor"}, entry: directoryEntry("vendor/lib"), expected: types.VerdictExclude},
		{name: "extension not allowed", extensions: []string{"py", "md"}, entry: fileEntry("b.txt"), expected: types.VerdictExclude},
		{name: "extension allowed", extensions: []string{"py", "md"}, entry: fileEntry("c.MD"), expected: types.VerdictInclude},
		{name: "directory never extension filtered", extensions: []string{"py"}, entry: directoryEntry("src"), expected: types.VerdictInclude},
		{name: "dotfile has no extension", extensions: []string{"bashrc"}, entry: fileEntry(".bashrc"), expected: types.VerdictExclude},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			policy := newTestPolicy(testCase.extensions, testCase.patterns...)
			verdict := policy.Decide(testCase.entry)
			if verdict != testCase.expected {
				t.Fatalf("expected %s, got %s for %+v", testCase.expected, verdict, testCase.entry)
			}
		})
	}
}

// TestDecideIsDeterministic verifies repeated queries yield identical verdicts.
func TestDecideIsDeterministic(t *testing.T) {
	policy := newTestPolicy([]string{"go"}, "build/", "*.tmp")
	entries := []types.EntryDescriptor{
		fileEntry("main.go"),
		fileEntry("notes.tmp"),
		directoryEntry("build"),
		directoryEntry(".idea"),
		fileEntry("data12345.go"),
	}
	for _, entry := range entries {
		first := policy.Decide(entry)
		for attempt := 0; attempt < 3; attempt++ {
			if again := policy.Decide(entry); again != first {
				t.Fatalf("verdict changed for %s: %s then %s", entry.RelativePath, first, again)
			}
		}
	}
}

// TestDigitRuleIgnoresAllowList verifies that digit-run files stay excluded even when their extension is allowed.
func TestDigitRuleIgnoresAllowList(t *testing.T) {
	policy := newTestPolicy([]string{"log"})
	if !policy.Excludes(fileEntry("cache12345.log")) {
		t.Fatalf("expected cache12345.log to be excluded")
	}
	if !policy.Excludes(fileEntry("run123456.log")) {
		t.Fatalf("expected run123456.log to be excluded")
	}
}

// TestEmptyPatternExcludesEveryDirectory verifies the join behavior for a bare "/" ignore line.
func TestEmptyPatternExcludesEveryDirectory(t *testing.T) {
	policy := newTestPolicy(nil, "/")
	if !policy.Excludes(directoryEntry("src")) {
		t.Fatalf("expected directories to be excluded by a bare slash pattern")
	}
	if policy.Excludes(fileEntry("main.go")) {
		t.Fatalf("expected files to survive a bare slash pattern")
	}
}

// TestNormalizePattern verifies single leading and trailing slash stripping.
func TestNormalizePattern(t *testing.T) {
	testCases := map[string]string{
		"build/":  "build",
		"/dist":   "dist",
		"/a/b/":   "a/b",
		"//x//":   "/x/",
		"*.log":   "*.log",
		"/":       "",
		"nested/": "nested",
	}
	for input, expected := range testCases {
		if actual := filter.NormalizePattern(input); actual != expected {
			t.Errorf("NormalizePattern(%q): expected %q, got %q", input, expected, actual)
		}
	}
}
