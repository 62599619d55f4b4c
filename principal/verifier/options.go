package verifier

import (
	"errors"

	"github.com/storacha/go-verfer/core/matter"
)

type options struct {
	codec matter.Codec
}

// Option is an option configuring a Verifier constructor.
type Option func(cfg *options) error

// WithCodec configures the codec used to package and decode key material.
// The default is matter.Default.
func WithCodec(codec matter.Codec) Option {
	return func(cfg *options) error {
		if codec == nil {
			return errors.New("codec must not be nil")
		}
		cfg.codec = codec
		return nil
	}
}

func configure(opts []Option) (options, error) {
	cfg := options{codec: matter.Default}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return options{}, err
		}
	}
	return cfg, nil
}
