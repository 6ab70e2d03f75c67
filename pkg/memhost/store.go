package memhost

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/loom/internal/log"
	"github.com/zjrosen/loom/internal/pubsub"
	"github.com/zjrosen/loom/pkg/host"
)

const tagsBucket = "tags"

// StoreEvent is the payload published on the host's event broker after a
// save or restore pass, carrying how many elements were touched.
type StoreEvent struct {
	Elements int
}

// Store persists element tags across process restarts, keyed by element
// name. Values round-trip through YAML, so anything stored in tags must be
// serialization-safe; this is the host-side enforcement of the rule that
// handler bindings are stored as names, never functions.
type Store struct {
	db *bolt.DB
}

// OpenStore opens (creating if needed) a tag store at path.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open tag store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(tagsBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init tag store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// PutTags stores one element's tags under its name.
func (s *Store) PutTags(name string, tags host.Tags) error {
	data, err := yaml.Marshal(map[string]any(tags))
	if err != nil {
		return fmt.Errorf("encode tags for %q: %w", name, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(tagsBucket)).Put([]byte(name), data)
	})
}

// GetTags loads one element's stored tags. The second result is false when
// the element has no stored tags.
func (s *Store) GetTags(name string) (host.Tags, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(tagsBucket)).Get([]byte(name)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}
	var tags map[string]any
	if err := yaml.Unmarshal(data, &tags); err != nil {
		return nil, false, fmt.Errorf("decode tags for %q: %w", name, err)
	}
	return host.Tags(tags), true, nil
}

// SaveTags writes the tags of every named element in the tree to the store.
func (h *Host) SaveTags(st *Store) error {
	var firstErr error
	saved := 0
	h.walk(func(el *Elem) {
		if el.name == "" || len(el.tags) == 0 {
			return
		}
		if err := st.PutTags(el.name, el.tags); err != nil && firstErr == nil {
			firstErr = err
			return
		}
		saved++
	})
	if firstErr != nil {
		return firstErr
	}
	log.Info(log.CatStore, "tags saved", "elements", saved)
	h.events.Publish(pubsub.TagsSavedEvent, StoreEvent{Elements: saved})
	return nil
}

// RestoreTags re-applies stored tags onto every same-named element in the
// tree. Elements without stored tags keep their current tags. This is the
// restart path: a freshly rebuilt tree picks up the tags (and so the handler
// bindings) a previous process persisted.
func (h *Host) RestoreTags(st *Store) error {
	var firstErr error
	restored := 0
	h.walk(func(el *Elem) {
		if el.name == "" || firstErr != nil {
			return
		}
		tags, ok, err := st.GetTags(el.name)
		if err != nil {
			firstErr = err
			return
		}
		if ok {
			el.tags = cloneTags(tags)
			restored++
		}
	})
	if firstErr != nil {
		return firstErr
	}
	log.Info(log.CatStore, "tags restored", "elements", restored)
	h.events.Publish(pubsub.TagsRestoredEvent, StoreEvent{Elements: restored})
	return nil
}
