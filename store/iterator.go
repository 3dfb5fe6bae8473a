package store

import (
	"bytes"
	"sync"

	"github.com/crowdchain/crowd/errors"
	"github.com/google/btree"
)

type btreeIter struct {
	data    btree.Item
	hasMore bool
	read    <-chan btree.Item
	stop    chan<- struct{}
	once    sync.Once
	reverse bool
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Ascend(insert)
		} else if start == nil { // end != nil
			bt.AscendLessThan(bkey{end}, insert)
		} else if end == nil { // start != nil
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		} else { // both != nil
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read:    read,
		stop:    stop,
		reverse: true,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Descend(insert)
		} else if start == nil { // end != nil
			bt.DescendLessOrEqual(bkeyLess{end}, insert)
		} else if end == nil { // start != nil
			bt.DescendGreaterThan(bkeyLess{start}, insert)
		} else { // both != nil
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

// wrap combines this iterator with the parent one. Both must iterate in
// the same direction.
func (b *btreeIter) wrap(parent Iterator) *itemIter {
	iter := &itemIter{
		wrap:    b,
		parent:  parent,
		reverse: b.reverse,
	}
	iter.initErr = iter.advanceParent()
	return iter
}

func (b *btreeIter) next() {
	b.data, b.hasMore = <-b.read
}

func (b *btreeIter) close() {
	b.once.Do(func() {
		b.stop <- struct{}{}
	})
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.data.(keyer)
}

func (b *btreeIter) valid() bool {
	return b.hasMore
}

type itemIter struct {
	wrap *btreeIter
	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parent Iterator
	// one item of lookahead from the parent iterator
	parentKey   []byte
	parentValue []byte
	parentDone  bool
	reverse     bool
	initErr     error
}

var _ Iterator = (*itemIter)(nil)

// Next returns the next key and value of this iterator, merging cached
// writes with the parent data. Deleted entries shadow parent entries of
// the same key.
func (i *itemIter) Next() ([]byte, []byte, error) {
	if i.initErr != nil {
		return nil, nil, i.initErr
	}

	for {
		switch i.firstKey() {
		case none:
			return nil, nil, errors.ErrIteratorDone
		case parent:
			key, value := i.parentKey, i.parentValue
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		case us, both:
			item := i.wrap.get()
			shadowed := i.firstKey() == both
			i.wrap.next()
			if shadowed {
				if err := i.advanceParent(); err != nil {
					return nil, nil, err
				}
			}
			if set, ok := item.(setItem); ok {
				return set.Key(), set.value, nil
			}
			// deleted entry, keep advancing
		}
	}
}

// Release releases the Iterator, allowing it to do any needed cleanup.
func (i *itemIter) Release() {
	if i.parent != nil {
		i.parent.Release()
	}
	i.wrap.close()
}

// advanceParent caches the next item of the parent iterator
func (i *itemIter) advanceParent() error {
	if i.parent == nil || i.parentDone {
		i.parentDone = true
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentValue = key, value
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
		i.parentKey, i.parentValue = nil, nil
	default:
		return err
	}
	return nil
}

// firstKey selects the source that provides the next key of the iteration
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if i.parentDone {
		if !i.wrap.valid() {
			return none
		}
		return us
	} else if !i.wrap.valid() {
		return parent
	}

	// both are valid... compare keys....
	cmp := bytes.Compare(i.parentKey, i.wrap.get().Key())
	if i.reverse {
		cmp = -cmp
	}

	if cmp < 0 {
		return parent
	} else if cmp > 0 {
		return us
	}
	return both
}
