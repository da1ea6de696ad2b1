package simplelru

// handle identifies a slot in the list arena.
type handle int

// nilHandle marks the absence of a slot: the ends of an empty list, the
// neighbours of the first and last slots, and the end of the free chain.
const nilHandle handle = -1

// initialSlots bounds the up-front allocation so a large capacity does not
// reserve memory that may never be used.
const initialSlots = 1024

// slot holds one entry and its links in the recency order.
type slot[K comparable, V any] struct {
	key   K
	value V
	prev  handle
	next  handle
}

// lruList is the recency order of all live entries, front is the least
// recently used and back the most recently used.
//
// Slots live in one slice and refer to each other by index. Released slots are
// chained through next starting at free and are reused before the slice grows,
// so handles stay valid for as long as the entry they were issued for.
type lruList[K comparable, V any] struct {
	slots []slot[K, V]
	head  handle
	tail  handle
	free  handle
	len   int
}

func newList[K comparable, V any](capacity int) *lruList[K, V] {
	l := &lruList[K, V]{
		slots: make([]slot[K, V], 0, min(capacity, initialSlots)),
	}
	l.init()
	return l
}

// init empties the list. Slot contents are zeroed so evicted keys and values
// are not kept reachable.
func (l *lruList[K, V]) init() {
	clear(l.slots)
	l.slots = l.slots[:0]
	l.head, l.tail, l.free = nilHandle, nilHandle, nilHandle
	l.len = 0
}

func (l *lruList[K, V]) length() int { return l.len }

// front returns the least recently used slot, or nilHandle.
func (l *lruList[K, V]) front() handle { return l.head }

// back returns the most recently used slot, or nilHandle.
func (l *lruList[K, V]) back() handle { return l.tail }

func (l *lruList[K, V]) next(h handle) handle { return l.slots[h].next }

func (l *lruList[K, V]) prev(h handle) handle { return l.slots[h].prev }

func (l *lruList[K, V]) key(h handle) K { return l.slots[h].key }

func (l *lruList[K, V]) value(h handle) V { return l.slots[h].value }

func (l *lruList[K, V]) setValue(h handle, value V) { l.slots[h].value = value }

// pushBack stores a new entry as the most recently used one.
func (l *lruList[K, V]) pushBack(key K, value V) handle {
	h := l.alloc()
	s := &l.slots[h]
	s.key, s.value = key, value
	l.linkBack(h)
	l.len++
	return h
}

// moveToBack promotes h to most recently used.
func (l *lruList[K, V]) moveToBack(h handle) {
	if h == l.tail {
		return
	}
	l.unlink(h)
	l.linkBack(h)
}

// remove unlinks h and releases its slot, returning the entry it held.
func (l *lruList[K, V]) remove(h handle) (key K, value V) {
	l.unlink(h)
	s := &l.slots[h]
	key, value = s.key, s.value
	*s = slot[K, V]{prev: nilHandle, next: l.free}
	l.free = h
	l.len--
	return key, value
}

// removeFront removes the least recently used entry.
func (l *lruList[K, V]) removeFront() (key K, value V, ok bool) {
	if l.head == nilHandle {
		return key, value, false
	}
	key, value = l.remove(l.head)
	return key, value, true
}

func (l *lruList[K, V]) alloc() handle {
	if h := l.free; h != nilHandle {
		l.free = l.slots[h].next
		return h
	}
	l.slots = append(l.slots, slot[K, V]{})
	return handle(len(l.slots) - 1)
}

func (l *lruList[K, V]) linkBack(h handle) {
	s := &l.slots[h]
	s.prev, s.next = l.tail, nilHandle
	if l.tail != nilHandle {
		l.slots[l.tail].next = h
	} else {
		l.head = h
	}
	l.tail = h
}

func (l *lruList[K, V]) unlink(h handle) {
	s := &l.slots[h]
	if s.prev != nilHandle {
		l.slots[s.prev].next = s.next
	} else {
		l.head = s.next
	}
	if s.next != nilHandle {
		l.slots[s.next].prev = s.prev
	} else {
		l.tail = s.prev
	}
	s.prev, s.next = nilHandle, nilHandle
}
