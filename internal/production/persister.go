// Package production provides integrations around the engine: session
// persistence and display sinks.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/calcx"
)

// Persister saves and loads calculator sessions by ID.
type Persister interface {
	Save(ctx context.Context, snapshot calcx.Snapshot) error
	Load(ctx context.Context, sessionID string) (calcx.Snapshot, error)
}

var ErrInvalidSessionID = errors.New("invalid session ID")

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// NewPersister returns the persister for format ("yaml" or "json") rooted at dir.
func NewPersister(dir, format string) (Persister, error) {
	switch format {
	case "yaml", "":
		return NewYAMLPersister(dir)
	case "json":
		return NewJSONPersister(dir)
	}
	return nil, fmt.Errorf("unknown session format %q", format)
}

// JSONPersister stores one JSON file per session.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot calcx.Snapshot) error {
	return save(ctx, p.dir, ".json", snapshot, func(v any) ([]byte, error) {
		return json.MarshalIndent(v, "", "  ")
	})
}

func (p *JSONPersister) Load(ctx context.Context, sessionID string) (calcx.Snapshot, error) {
	return load(ctx, p.dir, ".json", sessionID, json.Unmarshal)
}

// YAMLPersister stores one YAML file per session.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot calcx.Snapshot) error {
	return save(ctx, p.dir, ".yaml", snapshot, yaml.Marshal)
}

func (p *YAMLPersister) Load(ctx context.Context, sessionID string) (calcx.Snapshot, error) {
	return load(ctx, p.dir, ".yaml", sessionID, yaml.Unmarshal)
}

func sessionPath(dir, ext, sessionID string) (string, error) {
	if !sessionIDPattern.MatchString(sessionID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSessionID, sessionID)
	}
	return filepath.Join(dir, sessionID+ext), nil
}

func save(ctx context.Context, dir, ext string, snapshot calcx.Snapshot, marshal func(any) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn, err := sessionPath(dir, ext, snapshot.SessionID)
	if err != nil {
		return err
	}
	if err := snapshot.State.Validate(); err != nil {
		return fmt.Errorf("session %q: %w", snapshot.SessionID, err)
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}

	data, err := marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", fn, err)
	}

	// Write next to the target and rename so a crash never leaves half a file.
	tmp := fn + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, fn); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func load(ctx context.Context, dir, ext, sessionID string, unmarshal func([]byte, any) error) (calcx.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return calcx.Snapshot{}, err
	}
	fn, err := sessionPath(dir, ext, sessionID)
	if err != nil {
		return calcx.Snapshot{}, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return calcx.Snapshot{}, fmt.Errorf("session %q: %w", sessionID, os.ErrNotExist)
		}
		return calcx.Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot calcx.Snapshot
	if err := unmarshal(data, &snapshot); err != nil {
		return calcx.Snapshot{}, fmt.Errorf("unmarshal %s: %w", fn, err)
	}
	snapshot.SessionID = sessionID // Ensure ID
	if err := snapshot.State.Validate(); err != nil {
		return calcx.Snapshot{}, fmt.Errorf("session %q after load: %w", sessionID, err)
	}

	return snapshot, nil
}
