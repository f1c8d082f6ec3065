package service

import "errors"

// Sentinel errors surfaced to handlers, which map them onto HTTP statuses.
// Messages are client-facing; anything internal stays in the logs.
var (
	// ErrCheckoutFieldsIncomplete is returned by the field-visibility
	// validator. The message is fixed: the checkout form must always be able
	// to collect an email, a customer name, and a shipping address.
	ErrCheckoutFieldsIncomplete = errors.New(
		"checkout configuration must keep at least one email, one name and one address field visible and required")

	// ErrInsufficientStock rejects a ledger append that would drive a
	// product's stock below zero. Nothing is persisted.
	ErrInsufficientStock = errors.New("insufficient stock for requested change")

	ErrUnknownChangeType    = errors.New("unknown stock change type")
	ErrUnknownCheckoutField = errors.New("unknown checkout field name")
	ErrUnknownReportType    = errors.New("unknown report type")
)
