package xmlmerge_test

import (
	"fmt"

	"github.com/matzehuels/xmlmerge/pkg/xmlmerge"
)

func ExampleTransformer() {
	t := xmlmerge.New(xmlmerge.WithIndent(xmlmerge.Compact), xmlmerge.WithDeclaration(false))

	t.AddAction(xmlmerge.ActionFunc(func(p *xmlmerge.Provider) error {
		_, err := p.AppendChild("/root", "b")
		return err
	}))
	t.AddAction(xmlmerge.ActionFunc(func(p *xmlmerge.Provider) error {
		return p.SetAttr("/root", "done", "true")
	}))

	out, err := t.Transform([]byte(`<root><a/></root>`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(out))
	// Output: <root done="true"><a/><b/></root>
}
