package storage

// AddMessage appends a message to the (scope, user) ledger, creating the
// record if needed, and writes through.
func (s *Storage) AddMessage(scope, role, content, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreateRecord(scope, userID)
	rec.History = append(rec.History, Message{Role: role, Content: content})
	s.save()
}

// GetHistory returns a copy of the (scope, user) history, empty if none.
func (s *Storage) GetHistory(scope, userID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.scopeRecords(scope)[scope]
	if users == nil {
		return nil
	}
	rec := users[userID]
	if rec == nil {
		return nil
	}

	out := make([]Message, len(rec.History))
	copy(out, rec.History)
	return out
}

// InteractionCount returns how many messages the (scope, user) pair has on
// record. Used for the first-contact grace period.
func (s *Storage) InteractionCount(scope, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.scopeRecords(scope)[scope]
	if users == nil {
		return 0
	}
	rec := users[userID]
	if rec == nil {
		return 0
	}
	return len(rec.History)
}

// ResetUser deletes the (scope, user) record entirely. No-op if absent.
func (s *Storage) ResetUser(scope, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.scopeRecords(scope)[scope]
	if users == nil {
		return
	}
	if _, ok := users[userID]; !ok {
		return
	}
	delete(users, userID)
	s.save()
}
