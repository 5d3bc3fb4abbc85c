//go:build !unix

package execution

import "os/exec"

// Process groups are not available; exclusive runs only cover the current process.

func setProcessGroup(cmd *exec.Cmd) {}

func processAlive(pid int) bool { return false }

func signalGroup(pid int, force bool) error { return nil }
