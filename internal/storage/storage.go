// /internal/storage/storage.go
package storage

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"mood-relay/datastore"
	"mood-relay/internal/mood"
)

// schemaVersion is bumped on any incompatible change to the persisted shape.
const schemaVersion = 1

// DMPrefix reserves the DM scope-key namespace so it can never collide with
// a guild channel ID.
const DMPrefix = "dm-"

// DMScope returns the scope key for a direct-message thread with a user.
func DMScope(userID string) string {
	return DMPrefix + userID
}

type Message struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Record holds what the bot remembers about one user in one scope.
type Record struct {
	History []Message    `json:"history"`
	Mood    *mood.Vector `json:"mood"`
}

type memory struct {
	Guilds           map[string]map[string]*Record `json:"guilds"`
	DMs              map[string]map[string]*Record `json:"dms"`
	BotReplyCounters map[string]int                `json:"bot_reply_counters"`
	ActiveChannels   map[string][]string           `json:"active_channels"`
}

type rootState struct {
	Version            int                     `json:"version"`
	Memory             memory                  `json:"memory"`
	ChannelMoodEnabled map[string]bool         `json:"channel_mood_enabled"`
	ChannelMoods       map[string]*mood.Vector `json:"channel_moods"`
}

func emptyState() rootState {
	return rootState{
		Version: schemaVersion,
		Memory: memory{
			Guilds:           map[string]map[string]*Record{},
			DMs:              map[string]map[string]*Record{},
			BotReplyCounters: map[string]int{},
			ActiveChannels:   map[string][]string{},
		},
		ChannelMoodEnabled: map[string]bool{},
		ChannelMoods:       map[string]*mood.Vector{},
	}
}

// Storage is the domain view over the encrypted datastore: conversation
// ledger, moods, bot-reply counters and channel activation. Every mutator
// writes through to disk.
type Storage struct {
	ds    *datastore.DataStore
	mu    sync.Mutex
	state rootState
}

// New loads persisted state from the datastore. Missing or unreadable state
// degrades to an empty default; it never fails the process over old data.
func New(ds *datastore.DataStore) *Storage {
	s := &Storage{
		ds:    ds,
		state: emptyState(),
	}

	blob, err := ds.Load()
	if err != nil {
		log.Printf("[WARN] Failed to load persisted state, starting empty: %v", err)
		return s
	}
	if blob == nil {
		return s
	}

	var loaded rootState
	if err := json.Unmarshal(blob, &loaded); err != nil {
		log.Printf("[WARN] Persisted state is corrupt, starting empty: %v", err)
		return s
	}
	if loaded.Version != schemaVersion {
		log.Printf("[WARN] Persisted state has schema version %d, want %d, starting empty", loaded.Version, schemaVersion)
		return s
	}

	normalize(&loaded)
	s.state = loaded
	return s
}

// normalize backfills nil maps so accessors never have to check.
func normalize(st *rootState) {
	if st.Memory.Guilds == nil {
		st.Memory.Guilds = map[string]map[string]*Record{}
	}
	if st.Memory.DMs == nil {
		st.Memory.DMs = map[string]map[string]*Record{}
	}
	if st.Memory.BotReplyCounters == nil {
		st.Memory.BotReplyCounters = map[string]int{}
	}
	if st.Memory.ActiveChannels == nil {
		st.Memory.ActiveChannels = map[string][]string{}
	}
	if st.ChannelMoodEnabled == nil {
		st.ChannelMoodEnabled = map[string]bool{}
	}
	if st.ChannelMoods == nil {
		st.ChannelMoods = map[string]*mood.Vector{}
	}
}

// save serializes and writes through. Callers hold s.mu. A failed save is
// logged and swallowed: losing one write beats killing the event loop.
func (s *Storage) save() {
	blob, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("[ERR] Failed to marshal state: %v", err)
		return
	}
	if err := s.ds.Save(blob); err != nil {
		log.Printf("[ERR] Failed to save state: %v", err)
	}
}

// scopeRecords picks the DM or guild namespace for a scope key.
func (s *Storage) scopeRecords(scope string) map[string]map[string]*Record {
	if strings.HasPrefix(scope, DMPrefix) {
		return s.state.Memory.DMs
	}
	return s.state.Memory.Guilds
}

// getOrCreateRecord returns the (scope, user) record, creating it with an
// empty history and a neutral mood on first access.
func (s *Storage) getOrCreateRecord(scope, userID string) *Record {
	records := s.scopeRecords(scope)
	users := records[scope]
	if users == nil {
		users = map[string]*Record{}
		records[scope] = users
	}
	rec := users[userID]
	if rec == nil {
		rec = &Record{Mood: mood.DefaultVector(time.Now())}
		users[userID] = rec
	}
	return rec
}
