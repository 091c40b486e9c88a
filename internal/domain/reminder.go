package domain

import "time"

// PendingReminder is a scheduled expiration notification that has not fired yet.
// Exactly one pending reminder exists per qualifying inventory item; its ID is
// derived from the item ID so reconciliation can diff by presence alone.
type PendingReminder struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	ItemID         string    `json:"item_id" dynamodbav:"item_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Body           string    `json:"body" dynamodbav:"body"`
	TriggerAt      time.Time `json:"trigger_at" dynamodbav:"trigger_at,unixtime"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}
