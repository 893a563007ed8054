package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Slot names a place a chart is shown in.
type Slot string

const (
	SlotStrategies Slot = "strategies"
	SlotBreakdown  Slot = "breakdown"
)

// Instance is a rendered chart that can be disposed of.
type Instance interface {
	Destroy() error
}

// Renderer creates a chart instance for a slot.
type Renderer interface {
	Render(slot Slot, spec Spec) (Instance, error)
}

// Manager owns at most one live instance per slot. It is not safe for concurrent use.
type Manager struct {
	renderer  Renderer
	instances map[Slot]Instance
}

// NewManager returns a Manager rendering through r.
func NewManager(r Renderer) *Manager {
	return &Manager{renderer: r, instances: make(map[Slot]Instance)}
}

// Replace disposes of the slot's current instance, if any, then renders spec into it.
func (m *Manager) Replace(slot Slot, spec Spec) error {
	if prev, ok := m.instances[slot]; ok {
		delete(m.instances, slot)
		if err := prev.Destroy(); err != nil {
			return fmt.Errorf("destroy %s chart: %w", slot, err)
		}
	}

	inst, err := m.renderer.Render(slot, spec)
	if err != nil {
		return fmt.Errorf("render %s chart: %w", slot, err)
	}
	m.instances[slot] = inst
	return nil
}

// Active reports whether slot currently holds an instance.
func (m *Manager) Active(slot Slot) bool {
	_, ok := m.instances[slot]
	return ok
}

// Close disposes of every instance.
func (m *Manager) Close() error {
	var errs []error
	for slot, inst := range m.instances {
		if err := inst.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("destroy %s chart: %w", slot, err))
		}
		delete(m.instances, slot)
	}
	return errors.Join(errs...)
}

// FileRenderer writes each chart as <Dir>/<slot>.json; destroying the instance removes the file.
type FileRenderer struct {
	Dir string
}

type fileInstance struct {
	path string
}

func (r FileRenderer) Render(slot Slot, spec Spec) (Instance, error) {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode chart spec: %w", err)
	}

	path := filepath.Join(r.Dir, string(slot)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write chart file: %w", err)
	}
	return fileInstance{path: path}, nil
}

func (i fileInstance) Destroy() error {
	if err := os.Remove(i.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
