package convos

import (
	"cmp"
	"time"
)

// Filters are predicate trees built from extractors, comparisons, and
// combinators, evaluated client-side over conversations or messages:
//
//	unread := convos.GT(convos.ByUnread, 0)
//	recent := convos.After(convos.ByLastMessageTime, cutoff)
//	busy := convos.And(unread, recent)
//
// The same comparisons and combinators work for message filters via the
// BySentAt extractor.

// Extractors for the comparison filters.
var (
	// ByUnread extracts a conversation's unread message count.
	ByUnread = (*Convo).UnreadCount

	// ByParticipant extracts the other participant's handle.
	ByParticipant = (*Convo).Participant

	// ByLastMessageTime extracts when a conversation's last message was
	// sent.
	ByLastMessageTime = (*Convo).LastMessageTime

	// BySentAt extracts when a direct message was sent.
	BySentAt = (*DirectMessage).SentAt
)

// GT keeps items whose extracted value is greater than rhs.
func GT[T any, V cmp.Ordered](extract func(T) V, rhs V) func(T) bool {
	return func(t T) bool { return extract(t) > rhs }
}

// LT keeps items whose extracted value is less than rhs.
func LT[T any, V cmp.Ordered](extract func(T) V, rhs V) func(T) bool {
	return func(t T) bool { return extract(t) < rhs }
}

// Eq keeps items whose extracted value equals rhs.
func Eq[T any, V comparable](extract func(T) V, rhs V) func(T) bool {
	return func(t T) bool { return extract(t) == rhs }
}

// Neq keeps items whose extracted value differs from rhs.
func Neq[T any, V comparable](extract func(T) V, rhs V) func(T) bool {
	return func(t T) bool { return extract(t) != rhs }
}

// After keeps items whose extracted time is after cutoff.
func After[T any](extract func(T) time.Time, cutoff time.Time) func(T) bool {
	return func(t T) bool { return extract(t).After(cutoff) }
}

// Before keeps items whose extracted time is before cutoff.
func Before[T any](extract func(T) time.Time, cutoff time.Time) func(T) bool {
	return func(t T) bool { return extract(t).Before(cutoff) }
}

// And keeps items that pass every filter.
func And[T any](filters ...func(T) bool) func(T) bool {
	return func(t T) bool {
		for _, f := range filters {
			if !f(t) {
				return false
			}
		}
		return true
	}
}

// Or keeps items that pass at least one filter.
func Or[T any](filters ...func(T) bool) func(T) bool {
	return func(t T) bool {
		for _, f := range filters {
			if f(t) {
				return true
			}
		}
		return false
	}
}

// Not inverts a filter.
func Not[T any](f func(T) bool) func(T) bool {
	return func(t T) bool { return !f(t) }
}
