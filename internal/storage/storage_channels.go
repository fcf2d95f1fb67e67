package storage

import "slices"

// ActivateChannel marks a guild channel for auto-response without a direct
// address.
func (s *Storage) ActivateChannel(guildID, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := s.state.Memory.ActiveChannels[guildID]
	if slices.Contains(channels, channelID) {
		return
	}
	s.state.Memory.ActiveChannels[guildID] = append(channels, channelID)
	s.save()
}

// DeactivateChannel removes a channel from the guild's activation set.
// No-op if absent.
func (s *Storage) DeactivateChannel(guildID, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := s.state.Memory.ActiveChannels[guildID]
	idx := slices.Index(channels, channelID)
	if idx < 0 {
		return
	}
	s.state.Memory.ActiveChannels[guildID] = slices.Delete(channels, idx, idx+1)
	s.save()
}

// IsChannelActive reports whether a guild channel is in the activation set.
func (s *Storage) IsChannelActive(guildID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.state.Memory.ActiveChannels[guildID], channelID)
}
