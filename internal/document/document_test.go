package document_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/abilitydata/internal/document"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	root, err := document.Parse([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "x"]}`))
	require.NoError(t, err)

	assert.Equal(t, document.Object, root.Kind())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, root.Keys())

	alpha, ok := root.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, alpha.Keys())

	a, ok := alpha.Get("a")
	require.True(t, ok)
	assert.True(t, a.IsNull())

	mid, ok := root.Get("mid")
	require.True(t, ok)
	require.Equal(t, 2, mid.Len())
	assert.Equal(t, "1", mid.Items()[0].Raw())
	s, ok := mid.Items()[1].Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)
}

func TestParse_Scalars(t *testing.T) {
	cases := []struct {
		input string
		kind  document.Kind
	}{
		{`null`, document.Null},
		{`true`, document.Bool},
		{`false`, document.Bool},
		{`-12.5e3`, document.Number},
		{`"text"`, document.String},
		{`[]`, document.Array},
		{`{}`, document.Object},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			n, err := document.Parse([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, n.Kind())
		})
	}
}

func TestParse_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	root, err := document.Parse([]byte(`{"a": 1, "b": 2, "a": "late"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, root.Keys())
	a, _ := root.Get("a")
	s, ok := a.Str()
	assert.True(t, ok)
	assert.Equal(t, "late", s)
}

func TestParse_UnescapesKeysAndStrings(t *testing.T) {
	root, err := document.Parse([]byte(`{"condition": "Enemy \"marked\""}`))
	require.NoError(t, err)
	v, ok := root.Get("condition")
	require.True(t, ok)
	s, _ := v.Str()
	assert.Equal(t, `Enemy "marked"`, s)
}

func TestParse_InvalidJSON(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a": }`, `[1, 2,]`, `{'a': 1}`} {
		t.Run(input, func(t *testing.T) {
			_, err := document.Parse([]byte(input))
			require.Error(t, err)
			var syn *document.SyntaxError
			require.ErrorAs(t, err, &syn)
			assert.Contains(t, err.Error(), "Invalid JSON: ")
		})
	}
}

func TestParse_InvalidJSONReportsPosition(t *testing.T) {
	_, err := document.Parse([]byte("{\n  \"a\": 1,\n  \"b\": ?\n}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestNodeAccessorsOnWrongKind(t *testing.T) {
	n, err := document.Parse([]byte(`"x"`))
	require.NoError(t, err)
	_, ok := n.Get("x")
	assert.False(t, ok)
	assert.Nil(t, n.Keys())
	assert.Nil(t, n.Items())
	assert.Equal(t, 0, n.Len())
	_, ok = n.Bool()
	assert.False(t, ok)
	assert.Equal(t, "string", n.Kind().String())
}

func TestPaths(t *testing.T) {
	p := document.ChildPath(document.RootPath, "heroes")
	p = document.IndexPath(p, 3)
	p = document.ChildPath(p, "a.b")
	assert.Equal(t, "root.heroes[3].a.b", p)
}

func TestFileSource_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := document.NewFileSource(path, nil).Load(context.Background())
	require.Error(t, err)
	var nf *document.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "File not found: "+path, err.Error())
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"heroes": []}`), 0644))

	src := document.NewFileSource(path, nil)
	assert.Equal(t, path, src.Name())
	root, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, root.Has("heroes"))
}

func TestHTTPSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"build_info": {"version": "2"}}`))
	}))
	defer srv.Close()

	src := document.NewHTTPSource(srv.URL, 5*time.Second, nil)
	root, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, root.Has("build_info"))
}

func TestHTTPSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := document.NewHTTPSource(srv.URL, time.Second, nil).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestHTTPSource_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := document.NewHTTPSource(srv.URL, time.Second, nil).Load(context.Background())
	var syn *document.SyntaxError
	assert.ErrorAs(t, err, &syn)
}

func TestPropertyStringArrayRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOf(rapid.StringMatching(`[A-Za-z ]{0,12}`)).Draw(t, "words")
		raw := "["
		for i, w := range words {
			if i > 0 {
				raw += ","
			}
			raw += `"` + w + `"`
		}
		raw += "]"

		n, err := document.Parse([]byte(raw))
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if n.Len() != len(words) {
			t.Fatalf("got %d items, want %d", n.Len(), len(words))
		}
		for i, item := range n.Items() {
			if s, _ := item.Str(); s != words[i] {
				t.Fatalf("item %d = %q, want %q", i, s, words[i])
			}
		}
	})
}
