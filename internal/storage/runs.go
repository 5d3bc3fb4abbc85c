package storage

import (
	"encoding/json"
	"fmt"

	"phprun/internal/domain"
)

// RunStore keeps the single last-run slot.
// lastTest holds the target without its kind, lastType the kind tag.
type RunStore struct {
	backend Backend
}

// NewRunStore returns a Store on top of backend
func NewRunStore(backend Backend) *RunStore {
	return &RunStore{backend: backend}
}

// Get returns the stored record, or fallback() when nothing was stored yet
func (s *RunStore) Get(fallback func() domain.RunRecord) (domain.RunRecord, error) {
	kind, err := s.LastKind()
	if err != nil {
		return domain.RunRecord{}, err
	}

	data, ok, err := s.backend.Get(RunNamespace, LastTestKey)
	if err != nil {
		return domain.RunRecord{}, fmt.Errorf("load last test: %w", err)
	}
	if !ok {
		var rec domain.RunRecord
		if fallback != nil {
			rec = fallback()
		}
		if rec.Kind == "" {
			rec.Kind = kind
		}
		return rec, nil
	}

	var rec domain.RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.RunRecord{}, fmt.Errorf("parse last test: %w", err)
	}
	rec.Kind = kind
	return rec, nil
}

// Put overwrites the slot with record
func (s *RunStore) Put(record domain.RunRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal last test: %w", err)
	}
	if err := s.backend.Put(RunNamespace, LastTestKey, data); err != nil {
		return fmt.Errorf("save last test: %w", err)
	}

	kind := record.Kind
	if kind == "" {
		kind = domain.KindUnit
	}
	return s.PutLastKind(kind)
}

// LastKind returns the kind of the last run, unit when none was stored
func (s *RunStore) LastKind() (domain.Kind, error) {
	data, ok, err := s.backend.Get(RunNamespace, LastTypeKey)
	if err != nil {
		return domain.KindUnit, fmt.Errorf("load last type: %w", err)
	}
	if !ok {
		return domain.KindUnit, nil
	}

	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return domain.KindUnit, fmt.Errorf("parse last type: %w", err)
	}
	return domain.ParseKind(tag)
}

// PutLastKind stores the kind of the last run
func (s *RunStore) PutLastKind(kind domain.Kind) error {
	data, err := json.Marshal(string(kind))
	if err != nil {
		return fmt.Errorf("marshal last type: %w", err)
	}
	if err := s.backend.Put(RunNamespace, LastTypeKey, data); err != nil {
		return fmt.Errorf("save last type: %w", err)
	}
	return nil
}

// Active returns the run recorded as still going, ok is false when there is none
func (s *RunStore) Active() (domain.ActiveRun, bool, error) {
	data, ok, err := s.backend.Get(RunNamespace, ActiveKey)
	if err != nil || !ok {
		return domain.ActiveRun{}, false, err
	}

	var run domain.ActiveRun
	if err := json.Unmarshal(data, &run); err != nil {
		return domain.ActiveRun{}, false, fmt.Errorf("parse active run: %w", err)
	}
	return run, run.PID > 0, nil
}

// SetActive records run as the one currently going
func (s *RunStore) SetActive(run domain.ActiveRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal active run: %w", err)
	}
	if err := s.backend.Put(RunNamespace, ActiveKey, data); err != nil {
		return fmt.Errorf("save active run: %w", err)
	}
	return nil
}

// ClearActive forgets the active run if it is still runID.
// A newer run that replaced it is left alone.
func (s *RunStore) ClearActive(runID string) error {
	current, ok, err := s.Active()
	if err != nil || !ok || current.RunID != runID {
		return err
	}
	return s.SetActive(domain.ActiveRun{})
}
