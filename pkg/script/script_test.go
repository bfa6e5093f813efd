package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
	"github.com/matzehuels/xmlmerge/pkg/xmlmerge"
)

const sample = `
indent = -1
declaration = false

[[action]]
op = "append"
path = "/root"
tag = "b"
attrs = { z = "1", a = "2" }

[[action]]
op = "set-attr"
path = "/root"
key = "done"
value = "true"
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, s.Steps, 2)
	require.NotNil(t, s.Indent)
	assert.Equal(t, -1, *s.Indent)
	require.NotNil(t, s.Declaration)
	assert.False(t, *s.Declaration)
	assert.Equal(t, OpAppend, s.Steps[0].Op)
	assert.Equal(t, map[string]string{"z": "1", "a": "2"}, s.Steps[0].Attrs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"bad toml", `indent = `},
		{"unknown key", "colour = \"red\"\n"},
		{"unknown action key", "[[action]]\nop = \"remove\"\npath = \"/a\"\nwhere = \"x\"\n"},
		{"unknown op", "[[action]]\nop = \"explode\"\npath = \"/a\"\n"},
		{"missing path", "[[action]]\nop = \"remove\"\n"},
		{"bad tag", "[[action]]\nop = \"append\"\npath = \"/a\"\ntag = \"1b\"\n"},
		{"bad attr name", "[[action]]\nop = \"append\"\npath = \"/a\"\ntag = \"b\"\nattrs = { \"x y\" = \"1\" }\n"},
		{"missing key", "[[action]]\nop = \"set-attr\"\npath = \"/a\"\nvalue = \"1\"\n"},
		{"missing find", "[[action]]\nop = \"replace\"\nreplace = \"x\"\n"},
		{"huge indent", "indent = 40\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidScript), "got %v", err)
		})
	}
}

func TestValidateNamesFailingAction(t *testing.T) {
	_, err := Parse([]byte("[[action]]\nop = \"remove\"\npath = \"/a\"\n\n[[action]]\nname = \"drop b\"\nop = \"nope\"\npath = \"/b\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action 2 (drop b)")
}

func TestTransformer(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	out, err := s.Transformer().Transform([]byte("<root><a/></root>"))
	require.NoError(t, err)
	assert.Equal(t, `<root done="true"><a/><b a="2" z="1"/></root>`, string(out))
}

func TestApplyAppendsToExisting(t *testing.T) {
	s, err := Parse([]byte("[[action]]\nop = \"rename\"\npath = \"/root/b\"\ntag = \"c\"\n"))
	require.NoError(t, err)

	tr := xmlmerge.New(xmlmerge.WithIndent(xmlmerge.Compact), xmlmerge.WithDeclaration(false))
	tr.AddAction(xmlmerge.ActionFunc(func(p *xmlmerge.Provider) error {
		_, err := p.AppendChild("/root", "b")
		return err
	}))
	s.Apply(tr)

	out, err := tr.Transform([]byte("<root/>"))
	require.NoError(t, err)
	assert.Equal(t, "<root><c/></root>", string(out))
}

func TestOps(t *testing.T) {
	const input = `<root><a x="1">old</a><a/><b/></root>`
	tests := []struct {
		name string
		step string
		want string
	}{
		{"remove all matches", "op = \"remove\"\npath = \"//a\"", "<root><b/></root>"},
		{"remove attr", "op = \"remove-attr\"\npath = \"/root/a\"\nkey = \"x\"", "<root><a>old</a><a/><b/></root>"},
		{"set text", "op = \"set-text\"\npath = \"/root/b\"\ntext = \"new\"", `<root><a x="1">old</a><a/><b>new</b></root>`},
		{"append with text", "op = \"append\"\npath = \"/root/b\"\ntag = \"c\"\ntext = \"hi\"", `<root><a x="1">old</a><a/><b><c>hi</c></b></root>`},
		{"rename prefixed", "op = \"rename\"\npath = \"/root/b\"\ntag = \"ns:c\"", `<root><a x="1">old</a><a/><ns:c/></root>`},
		{"replace text", "op = \"replace\"\nfind = \"old\"\nreplace = \"fresh\"", `<root><a x="1">fresh</a><a/><b/></root>`},
		{"optional miss", "op = \"remove\"\npath = \"/root/zzz\"\noptional = true", `<root><a x="1">old</a><a/><b/></root>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte("indent = -1\ndeclaration = false\n[[action]]\n" + tt.step + "\n"))
			require.NoError(t, err)
			out, err := s.Transformer().Transform([]byte(input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestMissingPathFails(t *testing.T) {
	s, err := Parse([]byte("[[action]]\nop = \"set-attr\"\npath = \"/root/missing\"\nkey = \"k\"\nvalue = \"v\"\n"))
	require.NoError(t, err)

	_, err = s.Transformer().Transform([]byte("<root/>"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeActionFailed))

	var ae *xmlmerge.ActionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 1, ae.Index)
	assert.Equal(t, "set-attr /root/missing", ae.Name)
}

func TestReplaceMissFails(t *testing.T) {
	s, err := Parse([]byte("[[action]]\nop = \"replace\"\nfind = \"nothing\"\nreplace = \"x\"\n"))
	require.NoError(t, err)

	_, err = s.Transformer().Transform([]byte("<root/>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing")
}

func TestOptions(t *testing.T) {
	s, err := Parse([]byte("sort_attributes = true\n"))
	require.NoError(t, err)
	assert.Len(t, s.Options(), 1)

	out, err := s.Transformer(xmlmerge.WithIndent(xmlmerge.Compact), xmlmerge.WithDeclaration(false)).
		Transform([]byte(`<root b="1" a="2"/>`))
	require.NoError(t, err)
	assert.Equal(t, `<root a="2" b="1"/>`, string(out))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edit.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Actions(), 2)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound))
}

func TestSettings(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	indent, decl, sorted := s.Settings()
	assert.Equal(t, xmlmerge.DefaultIndent, indent)
	assert.True(t, decl)
	assert.False(t, sorted)

	s, err = Parse([]byte(sample))
	require.NoError(t, err)
	indent, decl, _ = s.Settings()
	assert.Equal(t, xmlmerge.Compact, indent)
	assert.False(t, decl)
}
