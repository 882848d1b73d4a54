package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/sightwords/internal/testutil"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := OpenCache(t.TempDir(), "mp3", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpenCacheRequiresDir(t *testing.T) {
	if _, err := OpenCache("", "mp3", zerolog.Nop()); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestCachePath(t *testing.T) {
	c := openTestCache(t)

	p := c.Path("Said")
	if filepath.Dir(p) != c.Dir() {
		t.Errorf("Path() outside cache dir: %s", p)
	}
	if !strings.HasPrefix(filepath.Base(p), "said_") || !strings.HasSuffix(p, ".mp3") {
		t.Errorf("Path() = %s", p)
	}
	if c.Path("said") == c.Path("Said") {
		t.Error("words differing in case should not share a file")
	}
}

func TestCacheEnsureGeneratesOnce(t *testing.T) {
	c := openTestCache(t)
	provider := &mockProvider{name: "mock"}
	ctx := context.Background()

	first, err := c.Ensure(ctx, "the", provider)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	second, err := c.Ensure(ctx, "the", provider)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	if first != second {
		t.Errorf("Ensure() paths differ: %s vs %s", first, second)
	}
	if provider.calls() != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls())
	}

	testutil.AssertFileContent(t, first, []byte("audio:the"))

	e, ok, err := c.Lookup("the")
	if err != nil || !ok {
		t.Fatalf("Lookup() = %v, %v", ok, err)
	}
	if e.Word != "the" || e.Provider != "mock" || e.Size != int64(len("audio:the")) {
		t.Errorf("Lookup() entry = %+v", e)
	}
}

func TestCacheEnsureCollapsesConcurrentRequests(t *testing.T) {
	c := openTestCache(t)
	provider := &mockProvider{name: "mock", block: make(chan struct{})}
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	paths := make([]string, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			paths[i], errs[i] = c.Ensure(ctx, "look", provider)
		}()
	}

	// Let the first request reach the provider, then release it.
	for provider.calls() == 0 {
		runtime.Gosched()
	}
	close(provider.block)
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("Ensure() #%d error = %v", i, errs[i])
		}
		if paths[i] != paths[0] {
			t.Errorf("Ensure() #%d path = %s, want %s", i, paths[i], paths[0])
		}
	}

	// Callers arriving after the first generation finished hit the manifest.
	if provider.calls() != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls())
	}
}

func TestCacheEnsureProviderError(t *testing.T) {
	c := openTestCache(t)
	provider := &mockProvider{name: "mock", generateErr: errors.New("no network")}

	if _, err := c.Ensure(context.Background(), "said", provider); err == nil {
		t.Fatal("expected error")
	}

	if _, ok, _ := c.Lookup("said"); ok {
		t.Error("failed generation should not be recorded")
	}

	leftovers, _ := filepath.Glob(filepath.Join(c.Dir(), "*.mp3"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestCacheRecordsProviderThatProducedFile(t *testing.T) {
	tests := []struct {
		name       string
		primaryErr error
		want       string
	}{
		{"primary succeeds", nil, "openai"},
		{"fallback used", errors.New("quota exceeded"), "espeak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := openTestCache(t)
			primary := &mockProvider{name: "openai", generateErr: tt.primaryErr}
			fallback := &mockProvider{name: "espeak"}
			provider := NewProviderWithFallback(primary, fallback, zerolog.Nop())

			if _, err := c.Ensure(context.Background(), "was", provider); err != nil {
				t.Fatalf("Ensure() error = %v", err)
			}

			e, ok, err := c.Lookup("was")
			if err != nil || !ok {
				t.Fatalf("Lookup() = %v, %v", ok, err)
			}
			if e.Provider != tt.want {
				t.Errorf("manifest provider = %q, want %q", e.Provider, tt.want)
			}
		})
	}
}

func TestCacheEnsureRejectsEmptyOutput(t *testing.T) {
	c := openTestCache(t)
	provider := &emptyProvider{}

	if _, err := c.Ensure(context.Background(), "said", provider); err == nil {
		t.Error("expected error for empty audio")
	}
}

func TestCacheEnsureInvalidWord(t *testing.T) {
	c := openTestCache(t)
	provider := &mockProvider{name: "mock"}

	if _, err := c.Ensure(context.Background(), "  ", provider); err == nil {
		t.Error("expected validation error")
	}
	if provider.calls() != 0 {
		t.Error("provider should not be called for invalid text")
	}
}

func TestCacheAdoptsExistingFile(t *testing.T) {
	c := openTestCache(t)

	if err := os.WriteFile(c.Path("go"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := c.Ensure(context.Background(), "go", nil)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if path != c.Path("go") {
		t.Errorf("Ensure() = %s", path)
	}

	e, ok, _ := c.Lookup("go")
	if !ok || e.Provider != "unknown" {
		t.Errorf("Lookup() = %+v, %v", e, ok)
	}
}

func TestCacheLookupMissingFile(t *testing.T) {
	c := openTestCache(t)
	provider := &mockProvider{name: "mock"}

	path, err := c.Ensure(context.Background(), "run", provider)
	if err != nil {
		t.Fatal(err)
	}
	os.Remove(path)
	testutil.AssertFileNotExists(t, path)

	if _, ok, _ := c.Lookup("run"); ok {
		t.Error("Lookup() should miss when the file is gone")
	}

	if _, err := c.Ensure(context.Background(), "run", provider); err != nil {
		t.Fatal(err)
	}
	if provider.calls() != 2 {
		t.Errorf("provider called %d times, want 2", provider.calls())
	}
}

func TestCacheStatsEntriesAndClear(t *testing.T) {
	c := openTestCache(t)
	provider := &mockProvider{name: "mock"}
	ctx := context.Background()

	for _, w := range []string{"the", "and", "said"} {
		if _, err := c.Ensure(ctx, w, provider); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	wantSize := int64(len("audio:the") + len("audio:and") + len("audio:said"))
	if stats.Entries != 3 || stats.TotalSize != wantSize {
		t.Errorf("Stats() = %+v, want 3 entries of %d bytes", stats, wantSize)
	}

	entries, err := c.Entries()
	if err != nil {
		t.Fatal(err)
	}
	var words []string
	for _, e := range entries {
		words = append(words, e.Word)
	}
	if strings.Join(words, ",") != "and,said,the" {
		t.Errorf("Entries() words = %v", words)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	stats, _ = c.Stats()
	if stats.Entries != 0 || stats.TotalSize != 0 {
		t.Errorf("Stats() after Clear = %+v", stats)
	}

	files, _ := filepath.Glob(filepath.Join(c.Dir(), "*.mp3"))
	if len(files) != 0 {
		t.Errorf("files left after Clear: %v", files)
	}

	testutil.AssertFileExists(t, filepath.Join(c.Dir(), ManifestFile))
}

func TestCacheReopenKeepsManifest(t *testing.T) {
	dir := t.TempDir()
	provider := &mockProvider{name: "mock"}

	c, err := OpenCache(dir, "mp3", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Ensure(context.Background(), "blue", provider); err != nil {
		t.Fatal(err)
	}
	c.Close()

	c, err = OpenCache(dir, ".MP3", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, ok, _ := c.Lookup("blue"); !ok {
		t.Error("entry lost after reopen")
	}
}

type emptyProvider struct{}

func (emptyProvider) GenerateAudio(ctx context.Context, text, outputFile string) error {
	return os.WriteFile(outputFile, nil, 0644)
}

func (emptyProvider) Name() string { return "empty" }

func (emptyProvider) IsAvailable() error { return nil }
