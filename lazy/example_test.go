package lazy_test

import (
	"fmt"

	"github.com/floppywaste/gutil/lazy"
)

func ExampleView_Cycle() {
	fmt.Println(lazy.Of(1, 2).Cycle().Limit(10).Collect())
	// Output:
	// [1 2 1 2 1 2 1 2 1 2]
}

func ExampleMap() {
	squares := lazy.Map(lazy.Of(1, 2, 3, 4), func(i int) int {
		fmt.Println("squaring", i)
		return i * i
	})
	fmt.Println("view created")
	v, _ := squares.Skip(1).First()
	fmt.Println(v)
	// Output:
	// view created
	// squaring 1
	// squaring 2
	// 4
}
