package deferred_test

import (
	"fmt"

	"github.com/matzehuels/xmlmerge/pkg/deferred"
)

func ExampleValue() {
	indent := deferred.From(deferred.Func(func() (int, error) {
		return 4, nil
	}))

	v, _, _ := indent.Get()
	fmt.Println("lazy:", v)

	indent.Set(2)
	v, _, _ = indent.Get()
	fmt.Println("eager:", v)
	// Output:
	// lazy: 4
	// eager: 2
}
