package console

import (
	"sync"

	"go.uber.org/zap"
)

// Option configures a Driver or Console
type Option func(*options)

type options struct {
	logger   *zap.Logger
	reporter Reporter
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReporter sets the failure sink. The default logs through the configured logger.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = NewLogReporter(o.logger)
	}
	return o
}

// Console wires one Driver to the list view and the organization views
type Console struct {
	driver *Driver

	once sync.Once
	list *ListController
}

// New returns a Console backed by store
func New(store Store, opts ...Option) *Console {
	return &Console{driver: NewDriver(store, opts...)}
}

// Organizations returns the list view; every call returns the same controller
func (c *Console) Organizations() *ListController {
	c.once.Do(func() {
		c.list = NewListController(c.driver)
	})
	return c.list
}

// Organization returns a new view of orgID with its own projection and draft.
// A view is discarded when the operator navigates away.
func (c *Console) Organization(orgID string) *DetailController {
	return NewDetailController(c.driver, orgID)
}
