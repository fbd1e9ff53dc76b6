package helpers

import (
	"sync"
)

func AppendSafe[T any](m *sync.Mutex, slice *[]T, item T) {
	m.Lock()
	defer m.Unlock()
	*slice = append(*slice, item)
}
