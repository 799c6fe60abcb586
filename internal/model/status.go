package model

import (
	"fmt"
	"strings"
)

// Status is the hiring stage an applicant is in.
type Status string

// Status constants.
const (
	StatusPreliminary Status = "Preliminary"
	StatusInterviewed Status = "Interviewed"
	StatusOffered     Status = "Offered"
	StatusAccepted    Status = "Accepted"
	StatusRejected    Status = "Rejected"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []Status{
	StatusPreliminary,
	StatusInterviewed,
	StatusOffered,
	StatusAccepted,
	StatusRejected,
}

// ParseStatus maps s onto its canonical Status, ignoring case.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, status := range Statuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: status must be one of %s", ErrInvalidField, joinStatuses())
}

func joinStatuses() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
