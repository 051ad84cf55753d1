package layout_test

import (
	"fmt"

	"github.com/buwaro/anchor/pkg/geom"
	"github.com/buwaro/anchor/pkg/layout"
)

func ExampleRelative() {
	r := layout.NewRelative()
	r.Add(layout.NewBox(40, 20), layout.Params{Tag: "icon"})

	var title layout.Params
	title.AddRule(layout.RightOf, "icon")
	title.Margins = geom.Insets{Left: 10}
	r.Add(layout.NewBox(30, 20), title)

	r.Measure(layout.MakeSpec(100, layout.Exactly), layout.MakeSpec(20, layout.Exactly))
	for _, f := range r.Frames() {
		fmt.Println(f)
	}
	// Output:
	// (0,0)-(40,20)
	// (50,0)-(80,20)
}

func ExampleLinear() {
	row := layout.NewLinear(layout.Horizontal)
	row.Add(layout.NewBox(0, 20), layout.Params{WidthPolicy: layout.SizeFixed, Weight: 1})
	row.Add(layout.NewBox(0, 20), layout.Params{WidthPolicy: layout.SizeFixed, Weight: 3})

	row.Measure(layout.MakeSpec(100, layout.Exactly), layout.MakeSpec(0, layout.Unspecified))
	for _, f := range row.Frames() {
		fmt.Println(f)
	}
	// Output:
	// (0,0)-(25,20)
	// (25,0)-(100,20)
}
