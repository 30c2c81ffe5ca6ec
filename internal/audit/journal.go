package audit

import (
	"fmt"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"vestd/internal/providers"
	"vestd/internal/structures"
)

// JournalInterface records accepted mutating operations. Rejected operations
// are never journaled; the journal is a history of state changes, not an
// access log.
type JournalInterface interface {
	Record(operation string, detail map[string]interface{})
	Close() error
}

// Entry is one JSONL line of the journal.
type Entry struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Operation string                 `json:"operation"`
	Detail    map[string]interface{} `json:"detail,omitempty"`
}

// Journal appends entries to a single JSONL file. Each line carries a uuid so
// downstream consumers can deduplicate replays.
type Journal struct {
	mu     sync.Mutex
	file   *os.File
	logger providers.Logger
}

func NewJournal(conf *structures.Config, logger providers.Logger) (JournalInterface, error) {
	if conf.Treasury.JournalPath == "" {
		logger.Infof(providers.TypeApp, "Operation journal disabled")
		return &noopJournal{}, nil
	}

	file, err := os.OpenFile(conf.Treasury.JournalPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open journal %s: %w", conf.Treasury.JournalPath, err)
	}

	logger.Infof(providers.TypeApp, "Operation journal at %s", conf.Treasury.JournalPath)
	return &Journal{file: file, logger: logger}, nil
}

func (j *Journal) Record(operation string, detail map[string]interface{}) {
	entry := Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Operation: operation,
		Detail:    detail,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		j.logger.Errorf(providers.TypeApp, "Journal marshal failed: %s", err)
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.file.Write(append(line, '\n')); err != nil {
		j.logger.Errorf(providers.TypeApp, "Journal write failed: %s", err)
	}
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

type noopJournal struct{}

func (n *noopJournal) Record(_ string, _ map[string]interface{}) {}
func (n *noopJournal) Close() error                              { return nil }
