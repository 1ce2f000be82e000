package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/bbrard/mibody/internal/record"
)

// Encoder renders decoded records onto a writer.
type Encoder interface {
	Name() string
	Encode(io.Writer, []*record.ScaleRecord) error
}

var (
	regMu    sync.RWMutex
	registry = map[string]Encoder{}
)

// Register stores an encoder under its name, replacing any previous one.
func Register(enc Encoder) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[enc.Name()] = enc
}

// Lookup returns the encoder registered under name.
func Lookup(name string) (Encoder, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	if enc, ok := registry[name]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("output format %q not found (available: %v)", name, namesLocked())
}

// Names lists the registered formats in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
