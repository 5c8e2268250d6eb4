package service

import (
	"context"
	"sync"
)

// Operation kinds tracked per session
const (
	OpChatSend   = "chat_send"
	OpChatSelect = "chat_select"
	OpUpload     = "upload_confirm"
)

// Inflight cancel functions of long-running backend calls, per session
type Inflight struct {
	mu   sync.Mutex
	next uint64
	ops  map[string]map[uint64]inflightOp
}

type inflightOp struct {
	kind   string
	cancel context.CancelFunc
}

// NewInflight creates an empty registry
func NewInflight() *Inflight {
	return &Inflight{ops: make(map[string]map[uint64]inflightOp)}
}

// Begin derives a cancellable context for an operation; done must be called when it finishes
func (f *Inflight) Begin(parent context.Context, sessionID, kind string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	f.mu.Lock()
	f.next++
	id := f.next
	if f.ops[sessionID] == nil {
		f.ops[sessionID] = make(map[uint64]inflightOp)
	}
	f.ops[sessionID][id] = inflightOp{kind: kind, cancel: cancel}
	f.mu.Unlock()

	return ctx, func() {
		cancel()
		f.mu.Lock()
		delete(f.ops[sessionID], id)
		if len(f.ops[sessionID]) == 0 {
			delete(f.ops, sessionID)
		}
		f.mu.Unlock()
	}
}

// Cancel cancels the session's operations of the given kinds, or all of them when none are given
func (f *Inflight) Cancel(sessionID string, kinds ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for id, op := range f.ops[sessionID] {
		if len(kinds) > 0 && !contains(kinds, op.kind) {
			continue
		}
		op.cancel()
		delete(f.ops[sessionID], id)
		n++
	}
	if len(f.ops[sessionID]) == 0 {
		delete(f.ops, sessionID)
	}
	return n
}

// Count operations in flight for a session
func (f *Inflight) Count(sessionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ops[sessionID])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
