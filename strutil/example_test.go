package strutil_test

import (
	"fmt"

	"github.com/floppywaste/gutil/strutil"
)

func ExampleJoiner() {
	s, _ := strutil.NewJoiner(", ").SkipNulls().Join("a", "b", "c", nil, "e")
	fmt.Println(s)
	s, _ = strutil.NewJoiner(", ").UseForNull("_").Join("a", "b", "c", nil, "e")
	fmt.Println(s)
	// Output:
	// a, b, c, e
	// a, b, c, _, e
}

func ExampleSplitter() {
	sp := strutil.NewSplitter(",").OmitEmptyStrings().TrimResults()
	fmt.Printf("%q\n", sp.SplitToList("a, b, ,d"))
	// Output:
	// ["a" "b" "d"]
}

func ExamplePadEnd() {
	fmt.Println(strutil.PadEnd("This line must have 40 characters", 40, '_'))
	fmt.Println(strutil.PadStart("This line must have 40 characters", 40, '_'))
	// Output:
	// This line must have 40 characters_______
	// _______This line must have 40 characters
}

func ExampleCaseFormat_To() {
	fmt.Println(strutil.UpperCamel.To(strutil.LowerUnderscore, "UpperCamel"))
	fmt.Println(strutil.LowerHyphen.To(strutil.LowerCamel, "lower-hyphen"))
	// Output:
	// upper_camel
	// lowerHyphen
}
