package models

import "fmt"

type TransactionStatus string

const (
	TxStatusOpen      TransactionStatus = "open"
	TxStatusCompleted TransactionStatus = "completed"
	TxStatusCancelled TransactionStatus = "cancelled"
)

type ItemStatus string

const (
	ItemStatusNew       ItemStatus = "new"
	ItemStatusModified  ItemStatus = "modified"
	ItemStatusConfirmed ItemStatus = "confirmed"
	ItemStatusCanceled  ItemStatus = "canceled"
	ItemStatusRefunded  ItemStatus = "refunded"
)

// txTransitions is the allowed-transition table for sales. Both completed and
// cancelled are terminal.
var txTransitions = map[TransactionStatus][]TransactionStatus{
	TxStatusOpen:      {TxStatusCompleted, TxStatusCancelled},
	TxStatusCompleted: {},
	TxStatusCancelled: {},
}

// itemTransitions covers line items. Canceled and refunded are terminal; a
// confirmed line can only still be refunded.
var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemStatusNew:       {ItemStatusModified, ItemStatusConfirmed, ItemStatusCanceled},
	ItemStatusModified:  {ItemStatusConfirmed, ItemStatusCanceled},
	ItemStatusConfirmed: {ItemStatusRefunded},
	ItemStatusCanceled:  {},
	ItemStatusRefunded:  {},
}

func (s TransactionStatus) Valid() bool {
	_, ok := txTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving to the given status is allowed.
// Setting the same status again is treated as a no-op and always allowed.
func (s TransactionStatus) CanTransitionTo(to TransactionStatus) bool {
	if s == to {
		return true
	}
	for _, t := range txTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s ItemStatus) Valid() bool {
	_, ok := itemTransitions[s]
	return ok
}

func (s ItemStatus) CanTransitionTo(to ItemStatus) bool {
	if s == to {
		return true
	}
	for _, t := range itemTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// TransitionError reports an illegal status move on a sale or line item.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from '%s' to '%s'", e.From, e.To)
}
