// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package java launches executable jars (LIRICAL, VIBE) as blocking
// subprocesses.
package java

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const defaultBin = "java"

// Runtime runs executable jars.
type Runtime interface {
	// Name returns the java binary in use.
	Name() string

	// Available reports whether the binary exists on PATH and answers
	// -version.
	Available() bool

	// RunJar executes "java -jar jar args..." and waits for it to exit.
	// Tool output is copied to stdout and stderr.
	RunJar(jar string, args []string, stdout, stderr io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for a specific java binary.
type runtime struct {
	bin  string
	exec executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "-version") == nil
}

func (r *runtime) RunJar(jar string, args []string, stdout, stderr io.Writer) error {
	full := make([]string, 0, len(args)+2)
	full = append(full, "-jar", jar)
	full = append(full, args...)

	if err := r.exec.Run(r.bin, full, stdout, stderr); err != nil {
		return fmt.Errorf("running %s %s: %w", r.bin, strings.Join(full, " "), err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// New returns a Runtime for bin ("java" when empty). It does not check
// availability; call Detect for that.
func New(bin string) Runtime {
	return newRuntime(bin, defaultExec)
}

// Detect returns a Runtime for bin after verifying it can be launched.
func Detect(bin string) (Runtime, error) {
	return detect(bin, defaultExec)
}

func newRuntime(bin string, exec executor) *runtime {
	if bin == "" {
		bin = defaultBin
	}
	return &runtime{bin: bin, exec: exec}
}

func detect(bin string, exec executor) (Runtime, error) {
	r := newRuntime(bin, exec)
	if !r.Available() {
		return nil, fmt.Errorf("java runtime not available: %s not found on PATH or not operational", r.bin)
	}
	return r, nil
}
