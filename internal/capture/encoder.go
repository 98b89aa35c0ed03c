package capture

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"time"
)

const DefaultFFmpeg = "ffmpeg"

// Job describes one frames-to-video encode.
type Job struct {
	FPS    int
	Input  string // printf-style frame pattern
	Output string
	Frames int
}

// EncodeResult is what the encoder did, whether or not it succeeded.
type EncodeResult struct {
	Binary   string
	Args     []string
	ExitCode int
	Output   []byte
	Duration time.Duration
	Frames   int
}

func (r EncodeResult) OK() bool {
	return r.Binary != "" && r.ExitCode == 0
}

type Encoder interface {
	Encode(ctx context.Context, job Job) (EncodeResult, error)
}

// FFmpeg assembles numbered frames into a video with an ffmpeg subprocess.
type FFmpeg struct {
	Binary    string
	ExtraArgs []string
}

func NewFFmpeg(binary string, extra ...string) *FFmpeg {
	if binary == "" {
		binary = DefaultFFmpeg
	}
	return &FFmpeg{Binary: binary, ExtraArgs: extra}
}

// Args returns the command line for job, without the binary.
func (f *FFmpeg) Args(job Job) []string {
	args := []string{"-y", "-r", strconv.Itoa(job.FPS), "-i", job.Input}
	args = append(args, f.ExtraArgs...)
	return append(args, job.Output)
}

// Encode runs ffmpeg to completion. The only way to abort it is ctx.
func (f *FFmpeg) Encode(ctx context.Context, job Job) (EncodeResult, error) {
	binary := f.Binary
	if binary == "" {
		binary = DefaultFFmpeg
	}
	res := EncodeResult{Binary: binary, Args: f.Args(job), Frames: job.Frames, ExitCode: -1}

	path, err := exec.LookPath(binary)
	if err != nil {
		return res, errors.Join(ErrEncoderNotFound, err)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, res.Args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err = cmd.Run()
	res.Duration = time.Since(start)
	res.Output = out.Bytes()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &EncodeError{Binary: binary, ExitCode: res.ExitCode, Output: res.Output, Wrapped: err}
		}
		return res, err
	}
	res.ExitCode = 0
	return res, nil
}
