// Package llsd implements the LLSD structured-data value model used by
// virtual-world asset protocols.
//
// An LLSD document is a tree of values drawn from a fixed set of variants:
// undefined, boolean, integer, real, UUID, string, date, URI, binary,
// array and map. The model is format-agnostic; the xml, binary and
// notation subpackages each convert between a value tree and one of the
// three interchangeable wire representations, and the codec subpackage
// detects which representation a buffer holds.
//
// Values are plain immutable trees. Once constructed, a value may be read
// concurrently by any number of goroutines.
//
// Format documentation is at http://wiki.secondlife.com/wiki/LLSD
package llsd
