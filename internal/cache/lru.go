package cache

// lruNode links one key into an lruList.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is a circular list of keys around a sentinel, most recently used
// first. The zero value is an empty list. Callers synchronize access.
type lruList[K comparable] struct {
	root lruNode[K]
	n    int
}

func (l *lruList[K]) init() {
	if l.root.next == nil {
		l.root.next = &l.root
		l.root.prev = &l.root
	}
}

// Len returns the number of keys in the list.
func (l *lruList[K]) Len() int { return l.n }

// insertAfter links node after at.
func (l *lruList[K]) insertAfter(node, at *lruNode[K]) {
	node.prev = at
	node.next = at.next
	at.next.prev = node
	at.next = node
	l.n++
}

func (l *lruList[K]) unlink(node *lruNode[K]) {
	node.prev.next = node.next
	node.next.prev = node.prev
	node.prev, node.next = nil, nil
	l.n--
}

// PushFront inserts key as the most recently used and returns its node.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	l.init()
	node := &lruNode[K]{key: key}
	l.insertAfter(node, &l.root)
	return node
}

// MoveToFront marks node as the most recently used.
func (l *lruList[K]) MoveToFront(node *lruNode[K]) {
	if node == nil || node.next == nil || l.root.next == node {
		return
	}
	l.unlink(node)
	l.insertAfter(node, &l.root)
}

// Remove unlinks node. Removing a node twice is a no-op.
func (l *lruList[K]) Remove(node *lruNode[K]) {
	if node != nil && node.next != nil {
		l.unlink(node)
	}
}

// RemoveOldest unlinks the least recently used key and returns it.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.n == 0 {
		var zero K
		return zero, false
	}
	node := l.root.prev
	l.unlink(node)
	return node.key, true
}

// Clear empties the list.
func (l *lruList[K]) Clear() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.n = 0
}
