// Package tagtree holds the in-memory hierarchy of decoded DICOM elements.
//
// A Tree is an arena of nodes built once from a pre-order stream of elements,
// each carrying its nesting depth. Nodes are addressed by NodeID (their arena
// index) and by Path, the chain of child indices from a root. The Path of a
// node survives a reload of the same file, which is how expansion state is
// carried across reloads.
//
// The only mutable state in a Tree is the per-node expanded flag. Structure
// is fixed after Build.
//
// # Flattening
//
// Flatten walks the tree in pre-order and produces the visible row list that
// the navigator draws. Children of a node are only visited when the node is
// expanded. When a MatchSet is supplied, only matches and their ancestors are
// returned; ancestors of matches are traversed as if expanded without their
// flags being touched.
//
//	tree, err := tagtree.Build(elements)
//	if err != nil {
//	    return err
//	}
//	rows := tagtree.Flatten(tree, nil)
package tagtree
