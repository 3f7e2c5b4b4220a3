package vos

import "os"

// HostOS is a VOS that passes through to the running process.
type HostOS struct {
	HostEnv
	VIO
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS over the real process, with I/O going to vio.
func NewHostOS(vio VIO) *HostOS {
	if vio == nil {
		vio = NewStdIO()
	}
	return &HostOS{VIO: vio}
}

// Getwd implements VOS.Getwd.
func (*HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements VOS.Chdir.
func (*HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}
