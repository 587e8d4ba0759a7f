package models

import "time"

const (
	// IdleAfter is how long without a heartbeat before a player counts as idle
	IdleAfter = 10 * time.Second

	// OfflineAfter is how long without a heartbeat before a player counts as offline
	OfflineAfter = 60 * time.Second
)

// PresenceStatus is derived from a heartbeat timestamp at read time
type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceIdle    PresenceStatus = "idle"
	PresenceOffline PresenceStatus = "offline"
)

// Presence maps each player in a room to their last heartbeat
type Presence map[PlayerID]time.Time

// PresenceStatusOf classifies lastSeen relative to now
func PresenceStatusOf(lastSeen, now time.Time) PresenceStatus {
	if lastSeen.IsZero() {
		return PresenceOffline
	}
	since := now.Sub(lastSeen)
	switch {
	case since > OfflineAfter:
		return PresenceOffline
	case since > IdleAfter:
		return PresenceIdle
	default:
		return PresenceOnline
	}
}

// StatusOf returns the presence status of id at now
func (p Presence) StatusOf(id PlayerID, now time.Time) PresenceStatus {
	return PresenceStatusOf(p[id], now)
}

// Newest returns the most recent heartbeat in the room
func (p Presence) Newest() time.Time {
	var newest time.Time
	for _, t := range p {
		if t.After(newest) {
			newest = t
		}
	}
	return newest
}
