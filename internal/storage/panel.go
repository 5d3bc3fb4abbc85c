package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

// PanelOutput is the last content shown in the output panel
type PanelOutput struct {
	RunID     string    `json:"run_id,omitempty"`
	Command   string    `json:"command"`
	Text      string    `json:"text"`
	Succeeded bool      `json:"succeeded"`
	Final     bool      `json:"final"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PanelStore persists output panel state between invocations
type PanelStore struct {
	backend Backend
}

// NewPanelStore returns a PanelStore on top of backend
func NewPanelStore(backend Backend) *PanelStore {
	return &PanelStore{backend: backend}
}

// Visible reports whether the panel was left open
func (p *PanelStore) Visible() (bool, error) {
	var visible bool
	ok, err := p.get(VisibleKey, &visible)
	if err != nil || !ok {
		return false, err
	}
	return visible, nil
}

// SetVisible records the panel visibility
func (p *PanelStore) SetVisible(visible bool) error {
	return p.put(VisibleKey, visible)
}

// Output returns the last panel content, ok is false before the first run
func (p *PanelStore) Output() (PanelOutput, bool, error) {
	var out PanelOutput
	ok, err := p.get(OutputKey, &out)
	return out, ok, err
}

// SetOutput replaces the panel content
func (p *PanelStore) SetOutput(out PanelOutput) error {
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = time.Now().UTC()
	}
	return p.put(OutputKey, out)
}

func (p *PanelStore) get(key string, v any) (bool, error) {
	data, ok, err := p.backend.Get(PanelNamespace, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse panel %s: %w", key, err)
	}
	return true, nil
}

func (p *PanelStore) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal panel %s: %w", key, err)
	}
	return p.backend.Put(PanelNamespace, key, data)
}
