package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(pairs ...string) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i]] = pairs[i+1]
	}
	return m
}

func demoEntries() []Entry {
	return []Entry{
		{Key: "nav.home", Texts: texts("en", "Home", "fr", "Accueil")},
		{Key: "footer.copyright", Texts: texts("en", "© 2025", "fr", "© 2025 (fr)")},
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  []string
	}{
		{"dotted key", Entry{Key: "homepage.welcome"}, []string{"homepage", "welcome"}},
		{"dotted key ignores group", Entry{Key: "a.b.c", Group: "g"}, []string{"a", "b", "c"}},
		{"flat key with group", Entry{Key: "title", Group: "seo"}, []string{"seo", "title"}},
		{"flat key", Entry{Key: "title"}, []string{"title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.entry))
		})
	}
}

func TestBuildDocument(t *testing.T) {
	t.Run("nests dotted keys in insertion order", func(t *testing.T) {
		doc, conflicts := BuildDocument(demoEntries(), "fr")
		require.Empty(t, conflicts)

		b, err := doc.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"nav":{"home":"Accueil"},"footer":{"copyright":"© 2025 (fr)"}}`, string(b))
	})

	t.Run("flat key without group stays top level", func(t *testing.T) {
		doc, _ := BuildDocument([]Entry{{Key: "title", Texts: texts("en", "Hello")}}, "en")

		v, ok := doc.Get("title")
		assert.True(t, ok)
		assert.Equal(t, "Hello", v)
	})

	t.Run("missing language renders empty string", func(t *testing.T) {
		doc, _ := BuildDocument([]Entry{{Key: "a.b", Texts: texts("en", "x")}}, "de")

		v, ok := doc.Get("a", "b")
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("placeholders are skipped", func(t *testing.T) {
		entries := []Entry{
			{Key: "_group_marketing", Group: "Marketing", Placeholder: true},
			{Key: "cta", Group: "Marketing", Texts: texts("en", "Buy")},
		}
		doc, conflicts := BuildDocument(entries, "en")

		assert.Empty(t, conflicts)
		assert.Equal(t, map[string]string{"Marketing.cta": "Buy"}, doc.Flatten())
	})

	t.Run("scalar before nested key keeps the scalar", func(t *testing.T) {
		entries := []Entry{
			{Key: "footer", Texts: texts("en", "Footer")},
			{Key: "footer.copyright", Texts: texts("en", "©")},
		}
		doc, conflicts := BuildDocument(entries, "en")

		require.Len(t, conflicts, 1)
		assert.Equal(t, "footer.copyright", conflicts[0].Key)
		assert.Equal(t, map[string]string{"footer": "Footer"}, doc.Flatten())
	})

	t.Run("nested key before scalar keeps the group", func(t *testing.T) {
		entries := []Entry{
			{Key: "footer.copyright", Texts: texts("en", "©")},
			{Key: "footer", Texts: texts("en", "Footer")},
		}
		doc, conflicts := BuildDocument(entries, "en")

		require.Len(t, conflicts, 1)
		assert.Equal(t, "footer", conflicts[0].Key)
		assert.Equal(t, map[string]string{"footer.copyright": "©"}, doc.Flatten())
	})

	t.Run("documents per language are independent", func(t *testing.T) {
		entries := demoEntries()
		en, _ := BuildDocument(entries, "en")
		fr, _ := BuildDocument(entries, "fr")

		fr.Set([]string{"nav", "home"}, "changed")
		v, _ := en.Get("nav", "home")
		assert.Equal(t, "Home", v)
	})
}

func TestDocumentRoundTrip(t *testing.T) {
	entries := []Entry{
		{Key: "nav.home", Texts: texts("en", "Home")},
		{Key: "nav.about", Texts: texts("en", "About <us> & more")},
		{Key: "title", Texts: texts("en", "Grüße")},
		{Key: "deep.a.b.c", Texts: texts("en", "deep")},
	}
	doc, conflicts := BuildDocument(entries, "en")
	require.Empty(t, conflicts)

	want := make(map[string]string)
	for _, e := range entries {
		want[e.Key] = e.Text("en")
	}
	assert.Equal(t, want, doc.Flatten())
}

func TestDocumentEncode(t *testing.T) {
	doc, _ := BuildDocument([]Entry{
		{Key: "nav.home", Texts: texts("en", "<b>Home</b> & Grüße")},
	}, "en")

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	assert.Equal(t, "{\n    \"nav\": {\n        \"home\": \"<b>Home</b> & Grüße\"\n    }\n}\n", buf.String())
}

func TestEmptyDocumentEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDocument().Encode(&buf))
	assert.Equal(t, "{}\n", buf.String())
}
