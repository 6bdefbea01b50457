package bspimport

import (
	"io"
	"os"
	"strings"

	"github.com/galaco/vpk2"
	"github.com/pkg/errors"
)

var errFileNotFound = errors.New("file not found")

// vfs resolves a path on disk first and then in the VPK archives, in order.
type vfs struct {
	vpks []*vpk.VPK
}

func openVPKs(paths []string) ([]*vpk.VPK, error) {
	vpks := make([]*vpk.VPK, 0, len(paths))

	for _, path := range paths {
		v, err := vpk.Open(vpk.MultiVPK(path))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open VPK %q", path)
		}

		vpks = append(vpks, v)
	}

	return vpks, nil
}

func (v vfs) open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}

	// archives store forward slashes, usually lower case
	candidates := []string{path}
	if normalized := strings.ToLower(strings.ReplaceAll(path, `\`, "/")); normalized != path {
		candidates = append(candidates, normalized)
	}

	for _, vpkF := range v.vpks {
		for _, name := range candidates {
			f, err := vpkF.Open(name)
			if err == nil {
				stat, err := f.Stat()
				if err == nil && stat.Size() > 0 {
					return f, nil
				}
			}
		}
	}

	return nil, errors.Wrapf(errFileNotFound, "%s not found", path)
}
