package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/grindfit/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// newConfirmer picks how a destructive action is approved: --yes skips the
// question, a terminal gets a huh confirm, anything else a y/N line prompt.
func newConfirmer(cmd *cobra.Command, app *App, yes bool) service.Confirmer {
	if yes {
		return service.AutoConfirm(true)
	}
	if app.interactive() {
		return service.ConfirmFunc(huhConfirm)
	}
	return lineConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
}

func huhConfirm(ctx context.Context, prompt string) (bool, error) {
	var ok bool
	if err := confirmForm(prompt, &ok).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// lineConfirmer reads a single y/N answer. Anything but y or yes declines.
type lineConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (c lineConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Skip the confirmation prompt")
}
