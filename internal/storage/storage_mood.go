package storage

import (
	"time"

	"mood-relay/internal/mood"
)

// IsChannelMoodEnabled reports whether a scope tracks one shared mood for
// everyone instead of per-user moods.
func (s *Storage) IsChannelMoodEnabled(scope string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ChannelMoodEnabled[scope]
}

// ToggleChannelMood flips the shared-mood switch for a scope and returns the
// new setting.
func (s *Storage) ToggleChannelMood(scope string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	enabled := !s.state.ChannelMoodEnabled[scope]
	s.state.ChannelMoodEnabled[scope] = enabled
	s.save()
	return enabled
}

// UpdateMood applies fn to exactly one mood vector: the scope's shared
// vector when channel mood is enabled there, the (scope, user) vector
// otherwise. It writes through and returns a copy of the result.
func (s *Storage) UpdateMood(scope, userID string, fn func(*mood.Vector)) mood.Vector {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.moodVector(scope, userID)
	fn(v)
	s.save()
	return *v
}

// GetMood returns a copy of the vector UpdateMood would target, creating it
// if absent.
func (s *Storage) GetMood(scope, userID string) mood.Vector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.moodVector(scope, userID)
}

// moodVector resolves the single vector for an event. Callers hold s.mu.
func (s *Storage) moodVector(scope, userID string) *mood.Vector {
	if s.state.ChannelMoodEnabled[scope] {
		v := s.state.ChannelMoods[scope]
		if v == nil {
			v = mood.DefaultVector(time.Now())
			s.state.ChannelMoods[scope] = v
		}
		return v
	}

	rec := s.getOrCreateRecord(scope, userID)
	if rec.Mood == nil {
		rec.Mood = mood.DefaultVector(time.Now())
	}
	return rec.Mood
}
