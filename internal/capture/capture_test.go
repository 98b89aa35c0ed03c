package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 30), uint8(y * 30), 0, 255})
		}
	}
	return img
}

func TestFrameStorePaths(t *testing.T) {
	s := ForOutput("/videos/day01.mp4", 0)

	if s.Dir() != filepath.Join("/videos", "tmp") {
		t.Errorf("unexpected dir %s", s.Dir())
	}
	if got := filepath.Base(s.Path(1)); got != "frame_0001.jpg" {
		t.Errorf("expected frame_0001.jpg, got %s", got)
	}
	if got := filepath.Base(s.Path(12345)); got != "frame_12345.jpg" {
		t.Errorf("expected frame_12345.jpg, got %s", got)
	}
	if got := filepath.Base(s.Input()); got != "frame_%04d.jpg" {
		t.Errorf("unexpected input pattern %s", got)
	}
	if got := filepath.Base(s.Pattern()); got != "frame_*.jpg" {
		t.Errorf("unexpected glob %s", got)
	}
}

func TestFrameStoreWriteListClean(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tmp")
	s := NewFrameStore(dir, 80)

	for i := 1; i <= 3; i++ {
		if err := s.Write(i, testImage()); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	// unrelated files survive a clean
	keep := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(keep, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(files))
	}
	for i, f := range files {
		want := s.Path(i + 1)
		if f != want {
			t.Errorf("frame %d: expected %s, got %s", i+1, want, f)
		}
	}

	removed, err := s.Clean()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 3 {
		t.Errorf("expected 3 removed, got %d", removed)
	}
	files, _ = s.List()
	if len(files) != 0 {
		t.Errorf("expected no frames after clean, got %d", len(files))
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("clean removed a non-frame file")
	}
}

func TestFrameStoreCleanMissingDir(t *testing.T) {
	s := NewFrameStore(filepath.Join(t.TempDir(), "absent"), 0)
	removed, err := s.Clean()
	if err != nil || removed != 0 {
		t.Errorf("expected (0, nil), got (%d, %v)", removed, err)
	}
}

func TestFrameStoreInvalidNumber(t *testing.T) {
	s := NewFrameStore(t.TempDir(), 0)
	if err := s.Write(0, testImage()); err == nil {
		t.Error("expected error for frame 0")
	}
}

func TestFFmpegArgs(t *testing.T) {
	f := NewFFmpeg("", "-pix_fmt", "yuv420p")
	args := f.Args(Job{FPS: 30, Input: "tmp/frame_%04d.jpg", Output: "out.mp4"})
	want := "-y -r 30 -i tmp/frame_%04d.jpg -pix_fmt yuv420p out.mp4"
	if got := strings.Join(args, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if f.Binary != DefaultFFmpeg {
		t.Errorf("expected default binary, got %s", f.Binary)
	}
}

func TestFFmpegNotFound(t *testing.T) {
	f := NewFFmpeg(filepath.Join(t.TempDir(), "no-such-encoder"))
	res, err := f.Encode(context.Background(), Job{FPS: 60, Input: "in", Output: "out"})
	if !errors.Is(err, ErrEncoderNotFound) {
		t.Fatalf("expected ErrEncoderNotFound, got %v", err)
	}
	if res.OK() {
		t.Error("result should not be OK")
	}
}

func fakeEncoder(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script encoder needs a unix shell")
	}
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFFmpegSuccess(t *testing.T) {
	bin := fakeEncoder(t, `echo "$@"`)
	f := NewFFmpeg(bin)

	res, err := f.Encode(context.Background(), Job{FPS: 24, Input: "in_%04d.jpg", Output: "out.mp4", Frames: 5})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !res.OK() || res.ExitCode != 0 {
		t.Errorf("expected success, got exit %d", res.ExitCode)
	}
	if res.Frames != 5 {
		t.Errorf("expected 5 frames, got %d", res.Frames)
	}
	if !strings.Contains(string(res.Output), "-r 24 -i in_%04d.jpg out.mp4") {
		t.Errorf("unexpected output %q", res.Output)
	}
}

func TestFFmpegFailure(t *testing.T) {
	bin := fakeEncoder(t, `echo "broken pipe" >&2; exit 3`)
	f := NewFFmpeg(bin)

	res, err := f.Encode(context.Background(), Job{FPS: 24, Input: "in", Output: "out"})
	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodeError, got %v", err)
	}
	if encErr.ExitCode != 3 || res.ExitCode != 3 {
		t.Errorf("expected exit 3, got %d / %d", encErr.ExitCode, res.ExitCode)
	}
	if !strings.Contains(string(res.Output), "broken pipe") {
		t.Errorf("stderr not captured: %q", res.Output)
	}
	if res.OK() {
		t.Error("result should not be OK")
	}
}
