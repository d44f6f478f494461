// Package queue defines message payloads exchanged over the message broker
// and the background consumer that audits them.
package queue

// ClaimProcessedEvent is published after a claim submission commits. It
// carries enough for downstream consumers (audit, notifications, fraud
// review) to act without querying the primary database. Amounts travel as
// decimal strings to keep them exact.
type ClaimProcessedEvent struct {
	ClaimID        string `json:"claim_id"`
	MemberID       string `json:"member_id"`
	ProviderID     string `json:"provider_id"`
	Status         string `json:"status"`
	ClaimAmount    string `json:"claim_amount"`
	ApprovedAmount string `json:"approved_amount"`
	FraudFlag      bool   `json:"fraud_flag"`
	ProcessedAt    string `json:"processed_at"`
}
