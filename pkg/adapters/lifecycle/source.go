// Package lifecycle exposes file watches as lifecycle event sources.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/sfio/pkg/adapters/fs"
)

// ChangeEvent is emitted each time the watched file is re-read.
type ChangeEvent struct {
	Path  string
	Value any
	Err   error
}

func (e ChangeEvent) String() string {
	if e.Err != nil {
		return fmt.Sprintf("change %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("change %s", e.Path)
}

type watchSource struct {
	acc    *fs.Accessor
	path   string
	events chan ChangeEvent
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits a ChangeEvent whenever path changes.
func NewSource(acc *fs.Accessor, path string) lifecycle.Source {
	return &watchSource{
		acc:    acc,
		path:   path,
		events: make(chan ChangeEvent),
		out:    make(chan lifecycle.Event),
	}
}

func (s *watchSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins watching. The Events channel is closed once ctx is done.
func (s *watchSource) Start(ctx context.Context) error {
	err := s.acc.Watch(ctx, s.path, func(v any, err error) {
		select {
		case s.events <- ChangeEvent{Path: s.path, Value: v, Err: err}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e := <-s.events:
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
