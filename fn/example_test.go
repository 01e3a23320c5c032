package fn_test

import (
	"fmt"
	"strconv"

	"github.com/floppywaste/gutil/fn"
)

func ExampleCompose() {
	square := func(i int) int { return i * i }
	toString := fn.Compose(strconv.Itoa, square)
	for _, i := range []int{1, 2, 3, 4} {
		fmt.Print(toString(i), " ")
	}
	fmt.Println()
	// Output:
	// 1 4 9 16
}
