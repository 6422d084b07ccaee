package item

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/klauspost/readahead"

	"github.com/bahostetterlewis/PyBakUP/cond"
)

// Kind tells whether an item is a single file or a folder.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// DefaultGroup is the group of items that do not name one.
const DefaultGroup = "default"

var (
	ErrLoad          = cond.NewError("load items")
	ErrInvalidItem   = cond.NewError("invalid item")
	ErrNeverBackedUp = cond.NewError("never backed up")
)

// Item is a thing to be backed up, together with the condition that decides
// when it is due.
type Item struct {
	LastBackup  time.Time `yaml:"last_backup,omitempty"`
	ID          string    `yaml:"id,omitempty"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Location    string    `yaml:"location"`
	Kind        Kind      `yaml:"kind,omitempty"`
	Group       string    `yaml:"group,omitempty"`
	Condition   string    `yaml:"condition"`
	Modified    bool      `yaml:"modified,omitempty"`
}

// manifest is the document read by [Load].
type manifest struct {
	Items []Item `yaml:"items"`
}

// Load decodes a YAML manifest of the form
//
//	items:
//	  - name: photos
//	    location: /home/me/Pictures
//	    kind: folder
//	    condition: LastBU > 7 days
//	    last_backup: 2024-03-01T10:00:00Z
//
// Items without an ID are given a random one and items without a group are
// placed in [DefaultGroup]. An empty manifest holds no items.
func Load(ctx context.Context, r io.Reader) ([]Item, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	var m manifest

	dec := yaml.NewDecoder(ra, yaml.DisallowUnknownField())
	if err := dec.DecodeContext(ctx, &m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, ErrLoad.Wrap(err)
	}

	for i := range m.Items {
		if err := m.Items[i].normalize(); err != nil {
			return nil, ErrLoad.Wrap(err).With(slog.Int("index", i))
		}
	}

	return m.Items, nil
}

func (it *Item) normalize() error {
	if it.Name == "" {
		return ErrInvalidItem.With(slog.String("reason", "missing name"))
	}

	switch it.Kind {
	case "":
		it.Kind = KindFile
	case KindFile, KindFolder:
	default:
		return ErrInvalidItem.With(
			slog.String("name", it.Name),
			slog.String("kind", string(it.Kind)),
		)
	}

	if it.ID == "" {
		it.ID = uuid.NewString()
	}

	if it.Group == "" {
		it.Group = DefaultGroup
	}

	return nil
}

// LogValue implements [slog.LogValuer].
func (it Item) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", it.ID),
		slog.String("name", it.Name),
		slog.String("group", it.Group),
	)
}

// Context returns the signals of the item as seen at the time now returns.
// The age of an item that was never backed up is unavailable.
func (it Item) Context(now func() time.Time) cond.Context {
	if now == nil {
		now = time.Now
	}

	return itemContext{item: it, now: now}
}

type itemContext struct {
	now  func() time.Time
	item Item
}

func (c itemContext) LastBackupAge() (int64, error) {
	if c.item.LastBackup.IsZero() {
		return 0, ErrNeverBackedUp.With(slog.String("name", c.item.Name))
	}

	age := c.now().Sub(c.item.LastBackup)
	if age < 0 {
		// Backed up "in the future" by a skewed clock.
		return 0, nil
	}

	return int64(age / time.Second), nil
}

func (c itemContext) WasModifiedSinceLastBackup() (bool, error) {
	return c.item.Modified, nil
}
