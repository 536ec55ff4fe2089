// Package dataset assembles small test fixtures of public image datasets.
//
// Each Load function runs the same idempotent pipeline: download the
// archive if missing, extract if missing, prune the tree to a small sample,
// write the manifest if missing, and hand back a loader over the result.
// Re-running a load is cheap: every step checks for its output first, and
// the sampling pass is a no-op on an already-pruned tree.
//
// Two loader handles exist: [CSVDataset] wraps a manifest file
// (Montgomery, where each X-ray row references its segmentation masks) and
// [DirDataset] wraps a class-directory tree (Omniglot, where each
// character directory is a class).
package dataset
