//go:build integration

package publish

import (
	"context"
	"testing"

	_ "gocloud.dev/blob/s3blob"

	"github.com/geez0219/dsfetch/internal/testutils"
)

func TestTreeAgainstMinio(t *testing.T) {
	ctx := context.Background()
	env := testutils.StartMinioContainer(t, ctx, "fixtures")
	defer env.Close(ctx)

	bucket, err := env.OpenBucket(ctx)
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	root := testutils.MakeFixtureTree(t, map[string]string{
		"montgomery.csv":              "image,mask_left,mask_right\n",
		"MontgomerySet/CXR_png/a.png": "img-a",
		"MontgomerySet/CXR_png/b.png": "img-b",
	})

	res, err := Tree(ctx, bucket, root, Options{Prefix: "datasets/montgomery"})
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if res.Uploaded != 3 {
		t.Errorf("expected 3 uploads, got %d", res.Uploaded)
	}

	data, err := bucket.ReadAll(ctx, "datasets/montgomery/montgomery.csv")
	if err != nil {
		t.Fatalf("read manifest object: %v", err)
	}
	if string(data) != "image,mask_left,mask_right\n" {
		t.Errorf("unexpected manifest content: %q", data)
	}

	// A second publish against the same bucket skips everything.
	res, err = Tree(ctx, bucket, root, Options{Prefix: "datasets/montgomery"})
	if err != nil {
		t.Fatalf("second Tree: %v", err)
	}
	if res.Uploaded != 0 || res.Skipped != 3 {
		t.Errorf("expected 0 uploaded / 3 skipped, got %d / %d", res.Uploaded, res.Skipped)
	}
}
