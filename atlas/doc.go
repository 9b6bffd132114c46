// Package atlas packs independently authored sprites into one
// spritesheet and maintains the positional index that goes with it.
//
// The packer is stable: rebuilding after sprites are added, removed or
// resized keeps every unchanged sprite at its previous tile position,
// because the positions recorded in the index seed the next run's
// occupancy grid. Only sprites without a usable prior position are
// placed, into the first free block in row-major scan order.
//
// The index is the only state carried between runs. Its semantic
// fields (description, tags, tile_type) and any unknown per-sprite
// fields belong to external editors; the packer threads them through
// untouched.
package atlas
