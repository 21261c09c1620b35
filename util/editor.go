package util

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// DefaultEditor is launched when $EDITOR is unset.
const DefaultEditor = "nvim"

// OpenInEditor opens files in the user's editor and waits for it to exit.
// Nothing is launched for an empty list.
func OpenInEditor(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = DefaultEditor
	}
	if _, err := exec.LookPath(editor); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNoEditor, editor, err)
	}
	cmd := exec.CommandContext(ctx, editor, files...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
