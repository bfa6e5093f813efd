package xmlmerge

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
)

func TestCanonicalizeCompact(t *testing.T) {
	in := "<root>\n    <a   x=\"1\"/>\n\t<b>text</b>\n</root>\n"

	out, err := Canonicalize([]byte(in), WithIndent(Compact), WithDeclaration(false))
	require.NoError(t, err)
	assert.Equal(t, `<root><a x="1"/><b>text</b></root>`, string(out))
}

func TestCanonicalizeDefaults(t *testing.T) {
	in := `<?xml version="1.0"?><root><a x="1"/><b>text</b></root>`

	out, err := Canonicalize([]byte(in))
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`), s)
	assert.Equal(t, 1, strings.Count(s, "<?xml"), "existing declaration is replaced, not duplicated")
	assert.Contains(t, s, "\n  <a x=\"1\"/>")
	assert.Contains(t, s, "\n  <b>text</b>")
	assert.True(t, strings.HasSuffix(s, "</root>\n"), s)
}

func TestCanonicalizeIsStable(t *testing.T) {
	in := "<root>\n <a/>\n      <b c=\"d\">x</b></root>"

	once, err := Canonicalize([]byte(in))
	require.NoError(t, err)
	twice, err := Canonicalize(once)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestCanonicalizeSortAttributes(t *testing.T) {
	in := `<root b="2" a="1"><child z="1" y="2"/></root>`

	out, err := Canonicalize([]byte(in), WithIndent(Compact), WithDeclaration(false), WithSortAttributes(true))
	require.NoError(t, err)
	assert.Equal(t, `<root a="1" b="2"><child y="2" z="1"/></root>`, string(out))

	out, err = Canonicalize([]byte(in), WithIndent(Compact), WithDeclaration(false))
	require.NoError(t, err)
	assert.Equal(t, in, string(out), "document order is kept by default")
}

func TestCanonicalizeKeepsComments(t *testing.T) {
	in := `<root><!-- generated --><a/></root>`

	out, err := Canonicalize([]byte(in), WithIndent(Compact), WithDeclaration(false))
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestWithIndentNegativeMeansCompact(t *testing.T) {
	out, err := Canonicalize([]byte("<root>\n  <a/>\n</root>"), WithIndent(-5), WithDeclaration(false))
	require.NoError(t, err)
	assert.Equal(t, `<root><a/></root>`, string(out))
}

func TestCanonicalizeKeepsMixedContent(t *testing.T) {
	in := `<root><p>hello <b>x</b> world</p></root>`

	out, err := Canonicalize([]byte(in), WithDeclaration(false))
	require.NoError(t, err)
	assert.Equal(t, "<root>\n  <p>hello <b>x</b> world</p>\n</root>\n", string(out))

	out, err = Canonicalize([]byte(`<p>hello <b>x</b> world</p>`), WithDeclaration(false))
	require.NoError(t, err)
	assert.Equal(t, "<p>hello <b>x</b> world</p>\n", string(out))
}

func TestCanonicalizeKeepsWhitespaceOnlyLeafText(t *testing.T) {
	for _, opt := range []Option{WithIndent(DefaultIndent), WithIndent(Compact)} {
		out, err := Canonicalize([]byte(`<root><t> </t><u>
</u></root>`), opt, WithDeclaration(false))
		require.NoError(t, err)
		assert.Contains(t, string(out), "<t> </t>")
		assert.Contains(t, string(out), "<u>\n</u>")
	}
}

func TestCanonicalizeHonorsSpacePreserve(t *testing.T) {
	in := "<root><pre xml:space=\"preserve\">\n   <a/>\n\t<b/></pre><c/></root>"

	out, err := Canonicalize([]byte(in), WithDeclaration(false))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<pre xml:space=\"preserve\">\n   <a/>\n\t<b/></pre>")
	assert.Contains(t, string(out), "\n  <c/>\n")
}

func TestWriteRejectsMalformedTopLevelTokens(t *testing.T) {
	tests := []struct {
		name string
		edit func(doc *etree.Document)
	}{
		{"comment with double dash", func(doc *etree.Document) {
			doc.InsertChildAt(0, etree.NewComment("a -- b"))
		}},
		{"processing instruction with terminator", func(doc *etree.Document) {
			doc.CreateProcInst("style", "x ?> y")
		}},
		{"reserved processing instruction target", func(doc *etree.Document) {
			doc.CreateProcInst("XML", "version=\"1.0\"")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := compact()
			tr.AddAction(ActionFunc(func(p *Provider) error {
				doc, err := p.Document()
				if err != nil {
					return err
				}
				tt.edit(doc)
				return nil
			}))

			out, err := tr.Transform([]byte(`<root/>`))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errs.Is(err, errs.ErrCodeSerialize), err.Error())
		})
	}
}

func TestWriteKeepsTopLevelComment(t *testing.T) {
	out, err := Canonicalize([]byte(`<!-- header --><root/>`), WithDeclaration(false))
	require.NoError(t, err)
	assert.Equal(t, "<!-- header -->\n<root/>\n", string(out))
}

func TestAbbreviateKeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("é", 40)

	got := abbreviate(s)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 32)+"...", got)
	assert.Equal(t, "short", abbreviate("  short "))
}
