package flagres

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// GlobeAssetName is the asset name of the globe image.
const GlobeAssetName = "globe"

// AssetResolver resolves flags to image files named after the country code,
// e.g. "ad.png". Codes listed in the Remap use the substituted name instead.
type AssetResolver struct {
	fsys  fs.FS
	ext   string
	remap Remap
}

// NewAssetResolver creates a resolver over fsys for files with extension ext.
// A nil remap uses DefaultRemap.
func NewAssetResolver(fsys fs.FS, ext string, remap Remap) *AssetResolver {
	if remap == nil {
		remap = DefaultRemap()
	}
	return &AssetResolver{
		fsys:  fsys,
		ext:   strings.TrimPrefix(ext, "."),
		remap: remap,
	}
}

// NewAssetDirResolver creates an AssetResolver over a directory on disk.
func NewAssetDirResolver(dir, ext string, remap Remap) *AssetResolver {
	return NewAssetResolver(os.DirFS(dir), ext, remap)
}

// Resolve returns the asset path for alpha2 when the file exists.
func (r *AssetResolver) Resolve(alpha2 string) (Ref, error) {
	name := r.remap.Name(alpha2)
	if name == "" {
		return "", fmt.Errorf("%w: empty code", ErrNotFound)
	}

	path := r.assetPath(name)
	if _, err := fs.Stat(r.fsys, path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return Ref(path), nil
}

// Globe returns the globe asset path. The file is not required to exist.
func (r *AssetResolver) Globe() Ref {
	return Ref(r.assetPath(GlobeAssetName))
}

func (r *AssetResolver) assetPath(name string) string {
	if r.ext == "" {
		return name
	}
	return name + "." + r.ext
}
