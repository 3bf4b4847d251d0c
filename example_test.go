package tonemap_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vearutop/tonemap"
)

func ExampleOperators() {
	for _, op := range tonemap.Operators() {
		fmt.Println(int(op), op)
	}

	// Output:
	// 0 none
	// 1 reinhard
	// 2 extended-reinhard
	// 3 extended-reinhard-lum
	// 4 reinhard-jodie
	// 5 hable-filmic
	// 6 aces-fitted
	// 7 aces-approximated
}

func ExampleOperator_Apply() {
	c := tonemap.Reinhard.Apply(tonemap.Color{R: 1, G: 3, B: 0})
	fmt.Printf("%.3f %.3f %.3f\n", c.R, c.G, c.B)

	// Output:
	// 0.500 0.750 0.000
}

func ExampleParseDoRF() {
	const curves = `#
Linearish
graph: 1
I =
0.0 0.5 1.0
B =
0.0 0.7 1.0
`
	tables, err := tonemap.ParseDoRF(strings.NewReader(curves))
	if err != nil {
		log.Fatal(err)
	}
	t, err := tonemap.FindResponse(tables, "linearish")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(t.Name(), t.Len())
	fmt.Printf("%.2f\n", t.Intensity(0.25, 1))

	// Output:
	// Linearish 3
	// 0.35
}

func ExampleTonemapFile() {
	written, err := tonemap.TonemapFile(context.Background(), "memorial.hdr", "out/memorial-%s.jpg",
		func(o *tonemap.Options) {
			o.Operators = []tonemap.Operator{tonemap.ACESFitted, tonemap.HableFilmic}
			o.SRGB = true
			o.Width = 1024
		})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(written)
}
