// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	defaultEps = 1e-9
)

// DuplicatePolicy decides what Insert does with a point that coincides with
// an existing vertex.
type DuplicatePolicy int

const (
	// RejectDuplicates fails the insertion with ErrDuplicatePoint.
	RejectDuplicates DuplicatePolicy = iota
	// MergeDuplicates turns the insertion into a no-op that returns the index
	// of the existing vertex.
	MergeDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case MergeDuplicates:
		return "merge"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

type Options struct {
	// Eps is the distance under which two points are the same vertex.
	Eps        float64
	Duplicates DuplicatePolicy
	Logger     *zap.Logger
}

type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		Eps:        defaultEps,
		Duplicates: RejectDuplicates,
		Logger:     zap.NewNop(),
	}
}

func WithEps(eps float64) Option {
	return func(o *Options) error {
		if eps <= 0 {
			return errors.New("WithEps: eps must be positive")
		}
		o.Eps = eps
		return nil
	}
}

func WithDuplicates(p DuplicatePolicy) Option {
	return func(o *Options) error {
		if p != RejectDuplicates && p != MergeDuplicates {
			return fmt.Errorf("WithDuplicates: unknown policy %v", p)
		}
		o.Duplicates = p
		return nil
	}
}

// WithLogger attaches a logger receiving debug entries for insertions and
// flips. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
		return nil
	}
}
