// Package benchtest is used for benchmarking charmatch and strutil against
// the equivalent functions of the Go stdlib's strings package.
//
// Run with -stdlib to benchmark the strings package instead. The stdlib
// functions are not always exact equivalents (strings.FieldsFunc drops empty
// fields, strings.Map cannot collapse runs) but they are a useful measure of
// the overhead of the predicate abstraction.
package benchtest
