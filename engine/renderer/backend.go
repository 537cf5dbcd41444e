package renderer

import (
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

type UniformKind uint8

const (
	UniformKindNone UniformKind = iota
	UniformKindFloat
	UniformKindFloatArray
	UniformKindInt
	UniformKindIntArray
	UniformKindVec2Array
	UniformKindVec3Array
	UniformKindVec4Array
	UniformKindMat4Array
	UniformKindSampler
)

/** @brief The last value pushed into a uniform slot. */
type UniformValue struct {
	Kind    UniformKind
	Count   uint32
	Floats  []float32
	Ints    []int32
	Sampler *metadata.TextureSampler
}

/**
 * @brief An in-memory uniform backend. Every push is copied into a
 * per-uniform snapshot, mirroring what a GPU backend would upload.
 * Useful for headless runs and for inspecting bind results.
 */
type MemoryBackend struct {
	values map[string]UniformValue
	// Total number of uniform pushes since creation.
	pushCount uint64
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values: make(map[string]UniformValue),
	}
}

// Value returns the last pushed value of the named uniform.
func (b *MemoryBackend) Value(name string) (UniformValue, bool) {
	v, ok := b.values[name]
	return v, ok
}

// PushCount returns the total number of uniform pushes recorded.
func (b *MemoryBackend) PushCount() uint64 {
	return b.pushCount
}

func (b *MemoryBackend) record(uniform *metadata.Uniform, value UniformValue) {
	b.values[uniform.Name] = value
	b.pushCount++
}

func (b *MemoryBackend) SetUniformFloat(uniform *metadata.Uniform, value float32) {
	b.record(uniform, UniformValue{Kind: UniformKindFloat, Count: 1, Floats: []float32{value}})
}

func (b *MemoryBackend) SetUniformFloatArray(uniform *metadata.Uniform, values []float32, count uint32) {
	b.record(uniform, UniformValue{Kind: UniformKindFloatArray, Count: count, Floats: snapshotFloats(values, count)})
}

func (b *MemoryBackend) SetUniformInt(uniform *metadata.Uniform, value int32) {
	b.record(uniform, UniformValue{Kind: UniformKindInt, Count: 1, Ints: []int32{value}})
}

func (b *MemoryBackend) SetUniformIntArray(uniform *metadata.Uniform, values []int32, count uint32) {
	ints := make([]int32, count)
	copy(ints, values)
	b.record(uniform, UniformValue{Kind: UniformKindIntArray, Count: count, Ints: ints})
}

func (b *MemoryBackend) SetUniformVec2Array(uniform *metadata.Uniform, values []float32, count uint32) {
	b.record(uniform, UniformValue{Kind: UniformKindVec2Array, Count: count, Floats: snapshotFloats(values, count*2)})
}

func (b *MemoryBackend) SetUniformVec3Array(uniform *metadata.Uniform, values []float32, count uint32) {
	b.record(uniform, UniformValue{Kind: UniformKindVec3Array, Count: count, Floats: snapshotFloats(values, count*3)})
}

func (b *MemoryBackend) SetUniformVec4Array(uniform *metadata.Uniform, values []float32, count uint32) {
	b.record(uniform, UniformValue{Kind: UniformKindVec4Array, Count: count, Floats: snapshotFloats(values, count*4)})
}

func (b *MemoryBackend) SetUniformMat4Array(uniform *metadata.Uniform, values []float32, count uint32) {
	b.record(uniform, UniformValue{Kind: UniformKindMat4Array, Count: count, Floats: snapshotFloats(values, count*16)})
}

func (b *MemoryBackend) SetUniformSampler(uniform *metadata.Uniform, sampler *metadata.TextureSampler) {
	b.record(uniform, UniformValue{Kind: UniformKindSampler, Count: 1, Sampler: sampler})
}

func snapshotFloats(values []float32, n uint32) []float32 {
	out := make([]float32, n)
	copy(out, values)
	return out
}
