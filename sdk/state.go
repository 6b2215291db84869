package sdk

// State is the host key/value store. Reads return nil when a key is missing; writes only
// ever land through a Batch so a contract call commits all of its changes or none.
type State interface {
	Get(key string) (*string, error)
	Write(b *Batch) error
}

type batchOp struct {
	key    string
	value  string
	delete bool
}

// Batch collects pending writes. A key written twice keeps its latest value but its
// original position, so replay order is stable.
type Batch struct {
	ops   []batchOp
	index map[string]int
}

// NewBatch returns an empty batch ready for Set/Delete.
func NewBatch() *Batch {
	return &Batch{index: map[string]int{}}
}

func (b *Batch) put(op batchOp) {
	if i, ok := b.index[op.key]; ok {
		b.ops[i] = op
		return
	}
	b.index[op.key] = len(b.ops)
	b.ops = append(b.ops, op)
}

// Set stores value under key once the batch is written.
func (b *Batch) Set(key, value string) {
	b.put(batchOp{key: key, value: value})
}

// Delete removes key once the batch is written.
func (b *Batch) Delete(key string) {
	b.put(batchOp{key: key, delete: true})
}

// Lookup reports the pending write for key, if any. A pending delete yields (nil, true).
func (b *Batch) Lookup(key string) (*string, bool) {
	i, ok := b.index[key]
	if !ok {
		return nil, false
	}
	op := b.ops[i]
	if op.delete {
		return nil, true
	}
	v := op.value
	return &v, true
}

// Len counts distinct keys touched.
func (b *Batch) Len() int { return len(b.ops) }

// Replay walks the pending writes in order; value is nil for deletes.
func (b *Batch) Replay(fn func(key string, value *string)) {
	for _, op := range b.ops {
		if op.delete {
			fn(op.key, nil)
			continue
		}
		v := op.value
		fn(op.key, &v)
	}
}

// SetObject writes a single key outside of a contract call, used by host tooling.
func SetObject(st State, key, value string) error {
	b := NewBatch()
	b.Set(key, value)
	return st.Write(b)
}
