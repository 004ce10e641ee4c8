package platform

import (
	"fmt"

	"github.com/aretw0/sfio/pkg/adapters/fs"
	"github.com/aretw0/sfio/pkg/core"
)

// New builds a filesystem Accessor from the given options.
//
//	acc, err := sfio.New(sfio.WithStrict(true), sfio.WithLogger(logger))
func New(opts ...Option) (*fs.Accessor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	serializers := make(map[string]core.Parser, len(o.serializers))
	for ext, s := range o.serializers {
		if s == nil {
			serializers[ext] = nil
			continue
		}
		p, ok := s.(core.Parser)
		if !ok {
			return nil, fmt.Errorf("serializer for %q must implement core.Parser, got %T", ext, s)
		}
		serializers[ext] = p
	}

	return fs.NewAccessor(fs.Config{
		Logger:        o.logger,
		Strict:        o.strict,
		RichEnv:       o.richEnv,
		Serializers:   serializers,
		WatchDebounce: o.watchDebounce,
	}), nil
}
