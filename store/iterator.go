package store

import (
	"bytes"

	"github.com/iov-one/docsign/errors"
)

// Model groups together key and value to return.
type Model struct {
	Key   []byte
	Value []byte
}

// sliceIterator wraps an Iterator over a slice of models.
type sliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*sliceIterator)(nil)

// NewSliceIterator returns an iterator over given, already ordered models.
func NewSliceIterator(data []Model) Iterator {
	return &sliceIterator{data: data}
}

func (s *sliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice")
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

func (s *sliceIterator) Release() {
	s.data = nil
}

// mergedIterator combines a parent iterator with cached operations. Both
// sources must be in ascending key order. When both contain the same key
// the cached operation wins, and a cached deletion hides the parent value.
type mergedIterator struct {
	parent Iterator
	cached []cacheItem

	// head of the parent iterator, nil key when exhausted
	pkey, pvalue []byte
	pdone        bool
	// perr is a parent failure other than the end of iteration.
	perr error
}

func newMergedIterator(parent Iterator, cached []cacheItem) *mergedIterator {
	m := &mergedIterator{parent: parent, cached: cached}
	m.advanceParent()
	return m
}

func (m *mergedIterator) advanceParent() {
	if m.pdone {
		return
	}
	k, v, err := m.parent.Next()
	if err != nil {
		m.pdone = true
		m.pkey, m.pvalue = nil, nil
		if !errors.ErrIteratorDone.Is(err) {
			m.perr = err
		}
		return
	}
	m.pkey, m.pvalue = k, v
}

func (m *mergedIterator) Next() (key, value []byte, err error) {
	if m.perr != nil {
		return nil, nil, errors.Wrap(m.perr, "parent")
	}
	for {
		switch {
		case m.pdone && len(m.cached) == 0:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "merged")
		case m.pdone:
			c := m.popCached()
			if c.deleted {
				continue
			}
			return c.key, c.value, nil
		case len(m.cached) == 0:
			k, v := m.pkey, m.pvalue
			m.advanceParent()
			return k, v, nil
		}

		switch cmp := bytes.Compare(m.pkey, m.cached[0].key); {
		case cmp < 0:
			k, v := m.pkey, m.pvalue
			m.advanceParent()
			return k, v, nil
		case cmp == 0:
			// Cached operation overwrites the parent value.
			m.advanceParent()
			fallthrough
		default:
			c := m.popCached()
			if c.deleted {
				continue
			}
			return c.key, c.value, nil
		}
	}
}

func (m *mergedIterator) popCached() cacheItem {
	c := m.cached[0]
	m.cached = m.cached[1:]
	return c
}

func (m *mergedIterator) Release() {
	m.parent.Release()
	m.cached = nil
}
