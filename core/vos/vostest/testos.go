// Package vostest contains helpers for testing code that runs on a vos.VOS.
package vostest

import (
	"bytes"
	"testing"

	"github.com/josephlewis42/minishell/core/vos"
	"github.com/spf13/afero"
)

// TestOS is a deterministic in-memory OS with captured output.
type TestOS struct {
	*vos.MemOS

	Out *bytes.Buffer
	Err *bytes.Buffer
}

// NewTestOS creates an OS with the given directories created, the working
// directory set to "/" and the environment set to env.
func NewTestOS(t testing.TB, env []string, dirs ...string) *TestOS {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	memOS := vos.NewMemOS(fs, vos.NewVIOAdapter(nil, out, errOut))
	if err := vos.CopyEnv(memOS, env); err != nil {
		t.Fatal(err)
	}

	return &TestOS{
		MemOS: memOS,
		Out:   out,
		Err:   errOut,
	}
}

// MustChdir changes the working directory or fails the test.
func (o *TestOS) MustChdir(t testing.TB, dir string) {
	t.Helper()
	if err := o.Chdir(dir); err != nil {
		t.Fatal(err)
	}
}

// MustGetwd returns the working directory or fails the test.
func (o *TestOS) MustGetwd(t testing.TB) string {
	t.Helper()
	wd, err := o.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return wd
}

// Reset clears captured output.
func (o *TestOS) Reset() {
	o.Out.Reset()
	o.Err.Reset()
}
