package service

import "context"

const (
	StructuralChangePrompt = "Changing goal, level, or frequency will regenerate your 4-week plan. Current progress will be lost. Continue?"
	ResetPrompt            = "Delete your monthly plan and start over?"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AutoConfirm approves (or declines) every prompt without asking.
type AutoConfirm bool

func (a AutoConfirm) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}

func confirm(ctx context.Context, c Confirmer, prompt string) error {
	if c == nil {
		return ErrNotConfirmed
	}
	ok, err := c.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotConfirmed
	}
	return nil
}
