package main

import (
	"context"
	"fmt"
	"testing"

	ierrors "github.com/matzehuels/illustgrid/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad thumbnail width", ierrors.New(ierrors.ErrCodeInvalidParameter, "thumbnail width must be 50-1000"), exitUsage},
		{"bad format", ierrors.New(ierrors.ErrCodeInvalidFormat, "unknown format %q", "pdf"), exitUsage},
		{"missing folder", ierrors.New(ierrors.ErrCodeNotFound, "no such folder"), exitNoInput},
		{"wrapped missing folder", fmt.Errorf("render: %w", ierrors.New(ierrors.ErrCodeNotFound, "gone")), exitNoInput},
		{"unreadable folder", ierrors.New(ierrors.ErrCodePermissionDenied, "denied"), exitNoPerm},
		{"broken config", ierrors.New(ierrors.ErrCodeInvalidConfig, "bad toml"), exitConfig},
		{"decode", ierrors.New(ierrors.ErrCodeDecodeFailure, "corrupt"), exitDataErr},
		{"internal", ierrors.New(ierrors.ErrCodeInternal, "oops"), exitSoftware},
		{"interrupted", context.Canceled, exitInterrupted},
		{"uncoded", fmt.Errorf("unknown command"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
