// Package typegraph builds immutable graphs of type nodes from structural
// type descriptions. A Builder classifies a description through capability
// interfaces, producing one node per variant of a closed taxonomy; each node
// carries an ordered metadata collection and exposes its children as labeled
// edges. Walk traverses a graph depth-first with identity deduplication, so
// shared and self-referential structure is safe to iterate.
// 
// The core only describes structure: it stores field and parameter
// descriptors supplied by external inspectors and never validates data
// against types. The inspect subpackage provides a reflect-based inspector
// producing descriptions from Go values.
package typegraph
