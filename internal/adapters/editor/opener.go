package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"docmigrate/internal/ports"
)

// Opener launches the user's editor on a document
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// fallbacks are tried in order when neither $EDITOR nor $VISUAL is set
var fallbacks = []string{"nvim", "vim", "vi", "nano"}

// NewOpener creates an opener reading the process environment
func NewOpener() *Opener {
	return &Opener{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

// Command returns an exec.Cmd opening path. Editor variables may carry
// arguments, e.g. EDITOR="code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.editorArgs()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) editorArgs() []string {
	for _, name := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(o.getenv(name)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range fallbacks {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}

	return nil
}
