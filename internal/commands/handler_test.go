package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type lintStubMessage struct{}

func (lintStubMessage) Type() string { return "posts.test.message" }

func (lintStubMessage) Validate() error { return nil }

type rejectedMessage struct{}

func (rejectedMessage) Type() string { return "posts.test.rejected" }

func (rejectedMessage) Validate() error {
	return errors.New("directory is required")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[lintStubMessage](func(ctx context.Context, msg lintStubMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), lintStubMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[rejectedMessage](func(ctx context.Context, msg rejectedMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), rejectedMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !strings.Contains(err.Error(), "post command") {
		t.Fatalf("expected post command wrapping, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[lintStubMessage](func(ctx context.Context, msg lintStubMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, lintStubMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("walk failed")
	h := NewHandler[lintStubMessage](func(ctx context.Context, msg lintStubMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), lintStubMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !strings.Contains(err.Error(), "post command") {
		t.Fatalf("expected post command wrapping, got %v", err)
	}
}

func TestHandlerLeavesWrappedErrorsAlone(t *testing.T) {
	execErr := goerrors.Wrap(errors.New("no such table"), goerrors.CategoryValidation, "index rejected record")
	h := NewHandler[lintStubMessage](func(ctx context.Context, msg lintStubMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), lintStubMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected the original category to survive, got %v", err)
	}
}
