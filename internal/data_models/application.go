package dto

import "time"

type ApplyRequest struct {
	ProposedPayment int64  `json:"proposed_payment"`
	Note            string `json:"note"`
}

type ConfirmAvailabilityRequest struct {
	Time    time.Time `json:"time"`
	Payment int64     `json:"payment"`
}

type SelectTaskerRequest struct {
	ApplicationID string `json:"application_id"`
}
