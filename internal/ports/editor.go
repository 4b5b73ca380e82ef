package ports

import "os/exec"

// EditorOpener opens documents in the user's editor
type EditorOpener interface {
	// Command returns an exec.Cmd for opening a file in the editor.
	// Used with bubbletea's ExecProcess so the TUI can suspend.
	Command(path string) (*exec.Cmd, error)
}
