package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRule, "unknown rule %q", "orbit")
	if got := err.Error(); got != `INVALID_RULE: unknown rule "orbit"` {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, ErrCodeInvalidRule) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInvalidGravity) {
		t.Error("Is() = true for mismatched code")
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("open failed")
	err := Wrap(ErrCodeFileNotFound, cause, "blueprint %s not found", "panel.toml")

	if got := err.Error(); got != "FILE_NOT_FOUND: blueprint panel.toml not found: open failed" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost from the chain")
	}
	if GetCode(err) != ErrCodeFileNotFound {
		t.Errorf("GetCode = %s", GetCode(err))
	}
}

func TestCodeSurvivesWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidDimension, "negative size")
	outer := fmt.Errorf("building child: %w", inner)

	if !Is(outer, ErrCodeInvalidDimension) {
		t.Error("code lost through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeInvalidDimension {
		t.Errorf("GetCode = %s", GetCode(outer))
	}
}

func TestGetCodePlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %q, want empty", got)
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() = true for a plain error")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidGravity, "unknown gravity %q", "sideways")
	if got := UserMessage(err); got != `unknown gravity "sideways"` {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
