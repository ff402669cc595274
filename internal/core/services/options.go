package services

import (
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
)

type serviceOptions struct {
	now       func() time.Time
	publisher portssvc.LedgerEventPublisher
}

// ServiceOption is a functional option for configuring the services
type ServiceOption func(*serviceOptions)

// WithClock replaces the wall clock used for audit stamps and date validation.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.now = now
	}
}

// WithEventPublisher sets the publisher notified after each committed ledger mutation.
func WithEventPublisher(publisher portssvc.LedgerEventPublisher) ServiceOption {
	return func(o *serviceOptions) {
		o.publisher = publisher
	}
}

func applyOptions(options []ServiceOption) serviceOptions {
	var o serviceOptions
	for _, option := range options {
		option(&o)
	}
	return o
}
