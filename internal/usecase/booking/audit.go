package booking

import "github.com/LindiweBraids/booking-api/internal/audit"

// Audit is best effort everywhere in this package; a nil dispatcher just
// means no trail.

func (uc *CreateBooking) dispatch(ev audit.Event) {
	if uc.audit != nil {
		uc.audit.Dispatch(ev)
	}
}

func (uc *ConfirmPayment) dispatch(ev audit.Event) {
	if uc.audit != nil {
		uc.audit.Dispatch(ev)
	}
}

func (uc *SendReminders) dispatch(ev audit.Event) {
	if uc.audit != nil {
		uc.audit.Dispatch(ev)
	}
}
