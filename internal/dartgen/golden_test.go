package dartgen

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/discoveregypt/apigen/internal/openapi"
)

// Golden archives live in testdata/*.txtar. Each holds the input document as
// openapi.json and the expected models.dart and service.dart. The archive
// comment carries "service:" and "source:" lines for the render options.

type goldenCase struct {
	opts    Options
	input   []byte
	models  string
	service string
}

func loadGolden(t *testing.T, path string) goldenCase {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	var gc goldenCase
	for _, line := range strings.Split(string(ar.Comment), "\n") {
		if v, ok := strings.CutPrefix(line, "service: "); ok {
			gc.opts.ServiceClass = v
		}
		if v, ok := strings.CutPrefix(line, "source: "); ok {
			gc.opts.Source = v
		}
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "openapi.json":
			gc.input = f.Data
		case "models.dart":
			gc.models = string(f.Data)
		case "service.dart":
			gc.service = string(f.Data)
		default:
			t.Fatalf("%s: unexpected archive member %q", path, f.Name)
		}
	}
	require.NotEmpty(t, gc.input, "%s: missing openapi.json", path)
	return gc
}

func TestRender_Golden(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			gc := loadGolden(t, path)

			doc, err := openapi.Parse(gc.input)
			require.NoError(t, err)

			got := Render(doc, gc.opts)
			if diff := cmp.Diff(gc.models, got.Models); diff != "" {
				t.Errorf("models.dart mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(gc.service, got.Service); diff != "" {
				t.Errorf("service.dart mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)

	for _, path := range paths {
		gc := loadGolden(t, path)

		doc1, err := openapi.Parse(gc.input)
		require.NoError(t, err)
		doc2, err := openapi.Parse(gc.input)
		require.NoError(t, err)

		first := Render(doc1, gc.opts)
		for i := 0; i < 5; i++ {
			if diff := cmp.Diff(first, Render(doc2, gc.opts)); diff != "" {
				t.Fatalf("%s: render %d differs (-first +again):\n%s", path, i, diff)
			}
		}
	}
}
