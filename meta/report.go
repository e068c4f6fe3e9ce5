package meta

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/go-imsto/imresize/image/exif"
	"github.com/go-imsto/imresize/utils"
)

const (
	SidecarSuffix = "_metadata"
	SidecarExt    = ".yaml"
)

// SidecarPath returns <dir>/<stem>_metadata<ext>.yaml for output,
// the rule applies to the base name only
func SidecarPath(output string) string {
	dir, base := filepath.Split(output)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+SidecarSuffix+ext+SidecarExt)
}

// Report writes the sidecar document of outputPath, then embeds the record
// into outputPath. An *EmbedError is returned with the sidecar path when only
// the second step failed.
func (r *Record) Report(outputPath string) (sidecar string, err error) {
	data, err := r.Marshal()
	if err != nil {
		return "", &WriteError{Path: outputPath, Err: err}
	}

	sidecar = SidecarPath(outputPath)
	if err = utils.SaveFile(sidecar, data); err != nil {
		return "", &WriteError{Path: sidecar, Err: err}
	}
	logger().Debugw("sidecar written", "path", sidecar, "bytes", len(data))

	if err = embedFile(outputPath, data); err != nil {
		return sidecar, &EmbedError{Path: outputPath, Err: err}
	}
	return sidecar, nil
}

// embedFile rewrites name with comment embedded, atomically and keeping
// the permissions of the existing file
func embedFile(name string, comment []byte) error {
	raw, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	out, err := exif.Embed(raw, comment)
	if err != nil {
		return err
	}
	return renameio.WriteFile(name, out, 0644, renameio.WithExistingPermissions())
}
