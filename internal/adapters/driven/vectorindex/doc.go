// Package vectorindex provides exact nearest-neighbour search and the
// on-disk index artifact.
//
// The artifact (index.kcc by default) is a standalone SQLite file holding the
// build metadata and every document vector. A rebuild writes a complete new
// file next to the current one and renames it into place, so readers never
// observe a partial build. Loading reads all vectors into a FlatIndex, which
// answers queries by exhaustive Euclidean (L2) distance.
package vectorindex
