// Package vos provides the virtual OS the interpreter runs against.
//
// Everything the shell touches in the outside world (working directory,
// environment variables and standard I/O) goes through a VOS so the same code
// can run against the host process or an in-memory double.
package vos

// VDir is the working directory layer of the virtual OS.
type VDir interface {
	// Getwd returns a rooted path name corresponding to the current directory.
	Getwd() (dir string, err error)

	// Chdir changes the current working directory to the named directory. If
	// there is an error, it will be of type *fs.PathError.
	Chdir(dir string) error
}

// VOS provides a virtual OS interface.
type VOS interface {
	VEnv
	VIO
	VDir
}
