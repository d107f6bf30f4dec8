// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithEps(t *testing.T) {
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps positive", 0.5, false},
		{"eps zero", 0, true},
		{"eps negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			opt := WithEps(tt.eps)
			err := opt(&opts)
			if (err != nil) != tt.wantErr {
				errValMsg := "nil"
				if tt.wantErr {
					errValMsg = "non-nil"
				}
				t.Errorf("WithEps(%v) error = %v, want %v", tt.eps, err, errValMsg)
			}
			if err == nil && opts.Eps != tt.eps {
				t.Errorf("WithEps(%v) opts.Eps = %v, want %v", tt.eps, opts.Eps, tt.eps)
			}
		})
	}
}

func TestWithDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		policy  DuplicatePolicy
		wantErr bool
	}{
		{"reject", RejectDuplicates, false},
		{"merge", MergeDuplicates, false},
		{"unknown", DuplicatePolicy(7), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			err := WithDuplicates(tt.policy)(&opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithDuplicates(%v) error = %v, wantErr %v", tt.policy, err, tt.wantErr)
			}
			if err == nil && opts.Duplicates != tt.policy {
				t.Errorf("WithDuplicates(%v) opts.Duplicates = %v", tt.policy, opts.Duplicates)
			}
		})
	}
}

func TestDuplicatePolicy_String(t *testing.T) {
	tests := []struct {
		in   DuplicatePolicy
		want string
	}{
		{RejectDuplicates, "reject"},
		{MergeDuplicates, "merge"},
		{DuplicatePolicy(9), "DuplicatePolicy(9)"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("DuplicatePolicy(%d).String() = %q, want %q", int(tt.in), got, tt.want)
		}
	}
}

func TestWithLogger(t *testing.T) {
	opts := defaultOptions()
	if err := WithLogger(nil)(&opts); err != nil {
		t.Fatalf("WithLogger(nil) error = %v, want nil", err)
	}
	if opts.Logger == nil {
		t.Errorf("WithLogger(nil) opts.Logger = nil, want no-op logger")
	}

	core, logs := observer.New(zapcore.DebugLevel)
	s := mustNewSubdivision(t, WithLogger(zap.New(core)))
	for _, p := range triangleScenario {
		if _, err := s.Insert(p); err != nil {
			t.Fatalf("Insert(%v) error = %v, want nil", p, err)
		}
	}
	if _, err := s.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v, want nil", err)
	}

	if got := logs.FilterMessage("insert").Len(); got != len(triangleScenario) {
		t.Errorf("logged %d insert entries, want %d", got, len(triangleScenario))
	}
	if got := logs.FilterMessage("finalize").Len(); got != 1 {
		t.Errorf("logged %d finalize entries, want 1", got)
	}
}
