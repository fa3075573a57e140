// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package process

import (
	"os"
	"os/exec"
	"syscall"
)

func configureCmd(cmd *exec.Cmd) {
	// Own process group so a terminal ^C reaches mediaconv, which decides
	// whether to kill the tool.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate sends SIGTERM so the tool can finalize its output container.
func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}
