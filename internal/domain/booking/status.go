package booking

// Status is the server-authoritative lifecycle state of a booking. The
// client never advances a status from a local timer; it only reflects REST
// response bodies and realtime events.
type Status string

const (
	StatusWaitingApproval    Status = "waiting_approval"
	StatusWaitingQuote       Status = "waiting_quote"
	StatusWaitingAcceptance  Status = "waiting_acceptance"
	StatusPaid               Status = "paid"
	StatusOnTheWay           Status = "on_the_way"
	StatusJobStartRequested  Status = "job_start_requested"
	StatusJobStarted         Status = "job_started"
	StatusJobCompleteRequest Status = "job_complete_requested"
	StatusCompleted          Status = "completed"
	StatusRejected           Status = "rejected"
	StatusQuoteExpired       Status = "quote_expired"
	StatusQuoteDeclined      Status = "quote_declined"
	StatusCancelled          Status = "cancelled"
	StatusFailed             Status = "failed"
)

var transitions = map[Status][]Status{
	StatusWaitingApproval:    {StatusWaitingQuote, StatusRejected},
	StatusWaitingQuote:       {StatusWaitingAcceptance, StatusQuoteExpired},
	StatusWaitingAcceptance:  {StatusPaid, StatusQuoteDeclined},
	StatusPaid:               {StatusOnTheWay},
	StatusOnTheWay:           {StatusJobStartRequested},
	StatusJobStartRequested:  {StatusJobStarted},
	StatusJobStarted:         {StatusJobCompleteRequest},
	StatusJobCompleteRequest: {StatusCompleted},
}

var terminal = map[Status]bool{
	StatusCompleted:     true,
	StatusRejected:      true,
	StatusQuoteExpired:  true,
	StatusQuoteDeclined: true,
	StatusCancelled:     true,
	StatusFailed:        true,
}

func (s Status) IsTerminal() bool {
	return terminal[s]
}

// CanTransitionTo reports whether the server-announced move is one the
// lifecycle allows. Cancellation and failure are reachable from any
// non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled || next == StatusFailed {
		return true
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Removing is true for statuses whose arrival means the record leaves the
// provider's list entirely (declined / cancelled style events).
func (s Status) Removing() bool {
	switch s {
	case StatusRejected, StatusQuoteDeclined, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	if terminal[s] {
		return true
	}
	_, ok := transitions[s]
	return ok
}
