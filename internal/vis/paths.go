package vis

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputPathFor derives the video path for a program located at exe: a .mp4
// named after the program, one directory above the one holding it.
//
//	/work/day01/bin/day01 -> /work/day01/day01.mp4
func OutputPathFor(exe string) string {
	base := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	workdir := filepath.Dir(filepath.Dir(exe))
	return filepath.Join(workdir, base+".mp4")
}

// DefaultOutputPath applies OutputPathFor to the running executable with
// symlinks resolved.
func DefaultOutputPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(exe); err == nil {
		exe = real
	}
	return OutputPathFor(exe), nil
}
