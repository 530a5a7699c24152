package main

import "github.com/google/uuid"

// GenerateFeedbackID returns a fresh opaque ID for a feedback record.
func GenerateFeedbackID() string {
	return uuid.NewString()
}
