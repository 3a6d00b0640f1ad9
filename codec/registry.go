package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the available codecs
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec // key can be either name or magic
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

var defaultRegistry = NewRegistry()

// Register registers a codec using both its name and magic
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec by name or magic
func Get(nameOrMagic string) (Codec, error) {
	return defaultRegistry.Get(nameOrMagic)
}

// List returns all registered codecs
func List() []Codec {
	return defaultRegistry.List()
}

// Detect finds the codec that produced data
func Detect(data []byte) (Codec, error) {
	return defaultRegistry.Detect(data)
}

// Decode decodes any container produced by a registered codec
func Decode(data []byte) (*DecodeResult, error) {
	return defaultRegistry.Decode(data)
}

// Register registers a codec using both its name and magic
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[codec.Name()] = codec
	r.codecs[codec.Magic()] = codec
}

// Get retrieves a codec by name or magic
func (r *Registry) Get(nameOrMagic string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codec, ok := r.codecs[nameOrMagic]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return codec, nil
}

// List returns all registered codecs (deduplicated), sorted by name
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Codec]bool)
	codecs := make([]Codec, 0)

	for _, codec := range r.codecs {
		if !seen[codec] {
			seen[codec] = true
			codecs = append(codecs, codec)
		}
	}
	sort.Slice(codecs, func(i, j int) bool {
		return codecs[i].Name() < codecs[j].Name()
	})

	return codecs
}

// Detect finds the codec whose magic starts data, looking through the
// entropy stage if present.
func (r *Registry) Detect(data []byte) (Codec, error) {
	raw, err := Unwrap(data)
	if err != nil {
		return nil, err
	}
	if len(raw) < MagicSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrUnsupportedFormat, len(raw))
	}
	codec, err := r.Get(string(raw[:MagicSize]))
	if err != nil {
		return nil, fmt.Errorf("%w: magic %q", err, raw[:MagicSize])
	}
	return codec, nil
}

// Decode routes data to the codec that produced it
func (r *Registry) Decode(data []byte) (*DecodeResult, error) {
	codec, err := r.Detect(data)
	if err != nil {
		return nil, err
	}
	return codec.Decode(data)
}
