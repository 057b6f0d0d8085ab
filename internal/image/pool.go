package image

import (
	"image"
	"sync"
)

// Pool reuses RGBA scratch buffers by size.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[image.Point][]*image.RGBA
	maxSize int
}

// NewPool returns a pool keeping at most maxPerBucket buffers of each
// size. Zero means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[image.Point][]*image.RGBA),
		maxSize: maxPerBucket,
	}
}

// Get returns a cleared w×h buffer with origin (0, 0).
func (p *Pool) Get(w, h int) *image.RGBA {
	key := image.Pt(w, h)

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		clear(buf.Pix)
		return buf
	}
	p.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Put returns buf to the pool. Buffers beyond the bucket limit are dropped.
func (p *Pool) Put(buf *image.RGBA) {
	if buf == nil {
		return
	}
	key := buf.Rect.Size()

	p.mu.Lock()
	defer p.mu.Unlock()
	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}
