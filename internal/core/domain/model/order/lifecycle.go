package order

// NextStatus returns the single forward transition permitted from current.
// The boolean is false when the lifecycle offers no further step.
//
//	awaiting   -> accepted
//	accepted   -> dispatched
//	dispatched -> delivered
//	delivered  -> fully_paid   only for partial orders whose balance is still open
func NextStatus(current Status, preference PaymentPreference, payment PaymentStatus) (Status, bool) {
	switch current {
	case Awaiting:
		return Accepted, true
	case Accepted:
		return Dispatched, true
	case Dispatched:
		return Delivered, true
	case Delivered:
		if preference == PaymentPartial && payment != PaymentFullyPaid {
			return FullyPaid, true
		}
	case Unknown, FullyPaid:
	}
	return Unknown, false
}

// WorkflowCompleted reports whether current is terminal for the preference:
// fully_paid for partial orders, delivered for full orders.
func WorkflowCompleted(current Status, preference PaymentPreference) bool {
	if preference == PaymentPartial {
		return current == FullyPaid
	}
	return current == Delivered
}

// paymentStatusOnReaching returns the payment status an order carries once it
// reaches target. Invariant: fully_paid is only set on delivered for full orders
// and on fully_paid for partial orders.
func paymentStatusOnReaching(target Status, preference PaymentPreference, current PaymentStatus) PaymentStatus {
	switch {
	case target == FullyPaid:
		return PaymentFullyPaid
	case target == Delivered && preference == PaymentFull:
		return PaymentFullyPaid
	default:
		return current
	}
}
