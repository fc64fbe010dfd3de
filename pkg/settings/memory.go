package settings

// MemoryStore keeps the document in memory. Used for tests and for running
// without persistence.
type MemoryStore struct {
	values Values
	saves  int
	err    error
}

// NewMemoryStore returns an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a memory store preloaded with v.
func NewMemoryStoreWith(v Values) *MemoryStore {
	return &MemoryStore{values: clone(v)}
}

func (m *MemoryStore) Load() (Values, error) {
	if m.values == nil {
		return nil, ErrNotFound
	}
	return clone(m.values), nil
}

func (m *MemoryStore) Save(v Values) error {
	if m.err != nil {
		return m.err
	}
	m.values = clone(v)
	m.saves++
	return nil
}

func (m *MemoryStore) Name() string { return BackendMemory }

func (m *MemoryStore) Path() string { return "" }

// Saves returns how many times Save succeeded.
func (m *MemoryStore) Saves() int { return m.saves }

// FailWith makes every following Save return err. A nil err clears it.
func (m *MemoryStore) FailWith(err error) { m.err = err }
