// Package ledger keeps a local record of published videos.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

var bucketPublished = []byte("PUBLISHED")

type Ledger struct {
	path string
	db   *bolt.DB
}

func New(path string) *Ledger {
	return &Ledger{path: path}
}

func (l *Ledger) Init() error {
	if l.db != nil {
		return nil
	}

	db, err := bolt.Open(l.path, os.FileMode(0644), &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return fmt.Errorf("could not open database: %v", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketPublished); err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return err
	}

	l.db = db
	return nil
}

func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	if err := l.db.Close(); err != nil {
		return err
	}
	l.db = nil
	log.Debug().Msg("Ledger closed")
	return nil
}

func (l *Ledger) Put(video *Video) error {
	if video.ID == "" {
		return fmt.Errorf("video id is required")
	}
	if video.PublishedAt.IsZero() {
		video.PublishedAt = time.Now().UTC()
	}

	value, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("could not serialise Video: %v", err)
	}

	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPublished).Put(video.Key(), value)
	})
}

// Map calls f for every recorded video, oldest first.
func (l *Ledger) Map(f func(*Video) error) error {
	return l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPublished).ForEach(func(key, value []byte) error {
			var video Video
			if err := json.Unmarshal(value, &video); err != nil {
				return fmt.Errorf("could not unmarshal key %s: %v", key, err)
			}
			return f(&video)
		})
	})
}

func (l *Ledger) Count() (n int, err error) {
	err = l.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketPublished).Stats().KeyN
		return nil
	})
	return
}
