package process

// Notes:
// - KillProcessGroup: we only test with an invalid PID to verify the function
//   doesn't panic. Cannot test with PID 0 (kills current process group) or
//   real PIDs.
// - Isolate: we check the hooks are installed and that Cancel tolerates a
//   command that never started. Real group termination needs a live child.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import (
	"os/exec"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestIsolate - Cancel hook installation
// ---------------------------------------------------------------------------

func TestIsolate_InstallsCancel(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("pandoc", "--version")
	Isolate(cmd)

	if cmd.Cancel == nil {
		t.Fatal("Isolate() did not install a Cancel hook")
	}
	if err := cmd.Cancel(); err != nil {
		t.Errorf("Cancel() on unstarted command = %v, want nil", err)
	}
}
