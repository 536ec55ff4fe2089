// Package publish uploads a pruned dataset fixture to object storage.
//
// CI jobs pull the small published fixture instead of fetching and pruning
// the full upstream datasets on every run. Storage is addressed through
// gocloud.dev/blob bucket URLs, so the same code serves s3://, gs://,
// file:// and, in tests, mem://.
//
// # Usage
//
//	bucket, err := blob.OpenBucket(ctx, "s3://ci-fixtures")
//	res, err := publish.Tree(ctx, bucket, fixtureDir, publish.Options{
//	    Prefix: "datasets/montgomery",
//	})
package publish
