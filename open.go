package minigwas

import (
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// OpenInput opens a local path or, when client is non-nil, a gs:// object, and
// transparently decompresses it. The caller must Close the result.
func OpenInput(path string, client *storage.Client) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "gs://") && client == nil {
		return nil, fmt.Errorf("%s: a Google Storage client is required for gs:// paths", path)
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	rsc, _, err := MaybeOpenSeekerFromGoogleStorage(expanded, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rc, err := MaybeDecompress(rsc)
	if err != nil {
		rsc.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return rc, nil
}
