// Package registry holds the catalog of callables available for graph
// composition.
//
// The Registry maps string identifiers used in graph descriptions (e.g.
// "add") to the compiled Go functions that implement them, together with
// the signature metadata the schema layer needs to generate forms. It is
// populated at startup by modules and passed explicitly into the graph
// builder; there is no global registry instance.
//
// Reads are safe for concurrent use once startup registration is complete.
package registry
