// Package manifest writes the flat CSV tables consumed by dataset loaders.
//
// A manifest lists one primary file per row, paths relative to the dataset
// root, with extra columns for associated files (segmentation masks)
// derived from the primary path by segment substitution.
package manifest
