package helpers

import (
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func MapSlice[T, U any](ts []T, f func(T) U) []U {
	us := make([]U, len(ts))
	for i := range ts {
		us[i] = f(ts[i])
	}
	return us
}

func FilterSlice[T any](ts []T, f func(T) bool) []T {
	filtered := []T{}
	for i := range ts {
		if f(ts[i]) {
			filtered = append(filtered, ts[i])
		}
	}
	return filtered
}

func Contains[T comparable](ts []T, t T) bool {
	return slices.Contains(ts, t)
}

type Optional[T any] struct {
	_hasValue bool
	_t        T
}

func Some[T any](t T) Optional[T] {
	return Optional[T]{true, t}
}

func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsEmpty() bool {
	return !o._hasValue
}

func (o Optional[T]) HasValue() bool {
	return !o.IsEmpty()
}

func (o Optional[T]) Value() T {
	return o._t
}

func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func Sign[T constraints.Signed](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func MaxInt(x int, y int) int {
	if x > y {
		return x
	}
	return y
}

// Delta is (to - from) in files and ranks.
func Delta(from FileRank, to FileRank) (int, int) {
	return int(to.File) - int(from.File), int(to.Rank) - int(from.Rank)
}

// Chebyshev is the number of king moves between two squares.
func Chebyshev(a FileRank, b FileRank) int {
	df, dr := Delta(a, b)
	return MaxInt(Abs(df), Abs(dr))
}

// RootDir is the repository root, found relative to this source file.
func RootDir() string {
	_, b, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(b), "..", "..")
	if _, err := os.Stat(dir); err != nil {
		return "."
	}
	return dir
}
