package system

import (
	"image"
	"sync"
)

// rgbaPool повторно использует крупные RGBA-буферы между задачами
// пакетного синтеза, снижая нагрузку на GC. Буферы группируются по
// размеру прямоугольника.
type rgbaPool struct {
	mu    sync.Mutex
	pools map[image.Rectangle]*sync.Pool
}

var previewBuffers = &rgbaPool{pools: make(map[image.Rectangle]*sync.Pool)}

// GetRGBA возвращает буфер нужного размера из пула или создаёт новый.
// Содержимое буфера произвольное, вызывающий обязан его перезаписать.
func GetRGBA(rect image.Rectangle) *image.RGBA {
	return previewBuffers.get(rect)
}

// PutRGBA возвращает буфер в пул для повторного использования
func PutRGBA(img *image.RGBA) {
	previewBuffers.put(img)
}

func (p *rgbaPool) get(rect image.Rectangle) *image.RGBA {
	p.mu.Lock()
	pool, ok := p.pools[rect]
	if !ok {
		pool = &sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(rect)
			},
		}
		p.pools[rect] = pool
	}
	p.mu.Unlock()

	return pool.Get().(*image.RGBA)
}

func (p *rgbaPool) put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.mu.Lock()
	pool, ok := p.pools[img.Rect]
	p.mu.Unlock()

	if ok {
		pool.Put(img)
	}
}
