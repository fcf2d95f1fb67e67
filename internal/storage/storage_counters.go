package storage

// BotReplyCount returns the consecutive bot-authored reply count for a scope.
func (s *Storage) BotReplyCount(scope string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Memory.BotReplyCounters[scope]
}

// IncrementBotReplies bumps the counter after replying to a bot-authored
// message.
func (s *Storage) IncrementBotReplies(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Memory.BotReplyCounters[scope]++
	s.save()
}

// ResetBotReplies zeroes the counter after replying to a human.
func (s *Storage) ResetBotReplies(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Memory.BotReplyCounters[scope] = 0
	s.save()
}
