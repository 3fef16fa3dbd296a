package internal

import (
	"errors"
	"time"
)

// DefaultMaxCycles bounds the number of convergence cycles of one Run.
const DefaultMaxCycles = 20

// runtimeOptions holds configuration for Scheduler and Runtime creation.
type runtimeOptions struct {
	logger    *Logger
	loggerSet bool
	maxCycles int
	slowFrame time.Duration
	frames    FrameRequester
}

// Option configures a Scheduler or a Runtime.
type Option interface {
	applyRuntime(*runtimeOptions) error
}

type optionImpl struct {
	applyRuntimeFunc func(*runtimeOptions) error
}

func (o *optionImpl) applyRuntime(opts *runtimeOptions) error {
	return o.applyRuntimeFunc(opts)
}

// WithLogger sets the logger. A nil logger disables logging entirely.
func WithLogger(logger *Logger) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		opts.logger = logger
		opts.loggerSet = true
		return nil
	}}
}

// WithMaxCycles sets how many convergence cycles a single Run may perform
// before it gives up with ErrRunaway.
func WithMaxCycles(n int) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		if n < 1 {
			return errors.New("max cycles must be at least 1")
		}
		opts.maxCycles = n
		return nil
	}}
}

// WithSlowFrameThreshold makes the scheduler log runs taking longer than d.
// Zero disables the check.
func WithSlowFrameThreshold(d time.Duration) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		if d < 0 {
			return errors.New("slow frame threshold must not be negative")
		}
		opts.slowFrame = d
		return nil
	}}
}

// WithFrameRequester sets the host delivering animation frames.
func WithFrameRequester(frames FrameRequester) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		opts.frames = frames
		return nil
	}}
}

func resolveOptions(opts []Option) (*runtimeOptions, error) {
	cfg := &runtimeOptions{
		maxCycles: DefaultMaxCycles,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRuntime(cfg); err != nil {
			return nil, err
		}
	}

	if !cfg.loggerSet {
		cfg.logger = defaultLogger()
	}

	return cfg, nil
}
