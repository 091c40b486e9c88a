// Package expiration holds the pure expiration-bucketing and reminder
// reconciliation logic. Nothing in here performs I/O; callers load the item
// snapshot and pending IDs, invoke Reconcile, and apply the returned diff.
package expiration

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
)

// Bucket classifies an item by distance to its expiration date.
type Bucket int

const (
	BucketExpired Bucket = iota
	BucketExpiringSoon
	BucketLater
)

func (b Bucket) String() string {
	switch b {
	case BucketExpired:
		return "expired"
	case BucketExpiringSoon:
		return "expiring_soon"
	default:
		return "later"
	}
}

// SoonWindowDays is the inclusive upper bound, in whole days, for an item to
// count as expiring soon and therefore to carry a pending reminder.
const SoonWindowDays = 3

// notificationIDPrefix namespaces reminder IDs so they never collide with
// other notification kinds registered against the same pending set.
const notificationIDPrefix = "item-expiration-"

// triggerHour is the local wall-clock hour reminders normally fire at.
const triggerHour = 9

// NotificationRequest is a desired reminder, keyed deterministically by item.
type NotificationRequest struct {
	ID        string
	ItemID    string
	Title     string
	Body      string
	TriggerAt time.Time
}

// Diff is the reconciliation result: reminders to (re)schedule and pending
// notification IDs that no longer correspond to a qualifying item.
type Diff struct {
	ToSchedule []NotificationRequest
	ToCancel   []string
}

// Partition groups an inventory snapshot into the three buckets.
type Partition struct {
	Expired      []domain.InventoryItem `json:"expired"`
	ExpiringSoon []domain.InventoryItem `json:"expiring_soon"`
	Later        []domain.InventoryItem `json:"later"`
}

// NotificationID derives the stable pending-notification ID for an item.
func NotificationID(itemID string) string {
	return notificationIDPrefix + itemID
}

// DaysUntil returns the whole-day difference between the start of now's day
// and the expiration's calendar date. Negative for past dates. The expiration
// is a date, not an instant: its year/month/day are taken as stored and
// re-anchored in now's location, so the answer never shifts with the zone its
// timestamp happens to carry. Rounding absorbs the 23/25-hour days around DST
// transitions.
func DaysUntil(expiresAt, now time.Time) int {
	from := startOfDay(now)
	to := time.Date(expiresAt.Year(), expiresAt.Month(), expiresAt.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// Classify buckets a single item relative to now. Items without an expiration
// date are bucketed Later: they carry no expiration concern and are never
// scheduled.
func Classify(item domain.InventoryItem, now time.Time) Bucket {
	if item.ExpiresAt == nil || item.ExpiresAt.IsZero() {
		return BucketLater
	}
	days := DaysUntil(*item.ExpiresAt, now)
	switch {
	case days < 0:
		return BucketExpired
	case days <= SoonWindowDays:
		return BucketExpiringSoon
	default:
		return BucketLater
	}
}

// PartitionItems splits a snapshot into Expired / ExpiringSoon / Later.
// Input order is preserved within each bucket.
func PartitionItems(items []domain.InventoryItem, now time.Time) Partition {
	var p Partition
	for _, item := range items {
		switch Classify(item, now) {
		case BucketExpired:
			p.Expired = append(p.Expired, item)
		case BucketExpiringSoon:
			p.ExpiringSoon = append(p.ExpiringSoon, item)
		default:
			p.Later = append(p.Later, item)
		}
	}
	return p
}

// TriggerTime returns 09:00 local time on the expiration date when that is
// still in the future, otherwise now+60s so the reminder fires almost
// immediately for items already past their normal slot.
func TriggerTime(expiresAt, now time.Time) time.Time {
	at := time.Date(expiresAt.Year(), expiresAt.Month(), expiresAt.Day(), triggerHour, 0, 0, 0, now.Location())
	if at.After(now) {
		return at
	}
	return now.Add(time.Minute)
}

// Reconcile computes the diff between the desired reminder set derived from
// items and the currently pending set. Qualifying items (0..SoonWindowDays
// days out) each get exactly one request; trigger times are recomputed
// unconditionally on every call, so callers should upsert. Output slices are
// sorted by ID for determinism.
func Reconcile(items []domain.InventoryItem, pendingIDs []string, now time.Time) Diff {
	desired := make(map[string]NotificationRequest, len(items))
	for _, item := range items {
		if Classify(item, now) != BucketExpiringSoon {
			continue
		}
		req := NotificationRequest{
			ID:        NotificationID(item.ItemID),
			ItemID:    item.ItemID,
			Title:     "Expiring soon",
			Body:      reminderBody(item.Name, DaysUntil(*item.ExpiresAt, now)),
			TriggerAt: TriggerTime(*item.ExpiresAt, now),
		}
		desired[req.ID] = req
	}

	var diff Diff
	for _, req := range desired {
		diff.ToSchedule = append(diff.ToSchedule, req)
	}
	sort.Slice(diff.ToSchedule, func(i, j int) bool {
		return diff.ToSchedule[i].ID < diff.ToSchedule[j].ID
	})

	for _, id := range pendingIDs {
		if _, ok := desired[id]; !ok {
			diff.ToCancel = append(diff.ToCancel, id)
		}
	}
	sort.Strings(diff.ToCancel)
	return diff
}

func reminderBody(name string, days int) string {
	switch days {
	case 0:
		return fmt.Sprintf("%s expires today.", name)
	case 1:
		return fmt.Sprintf("%s expires tomorrow.", name)
	default:
		return fmt.Sprintf("%s expires in %d days.", name, days)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
