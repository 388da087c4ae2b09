package buffers

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
)

// stagingCore holds the state shared by both staging buffer directions: a
// CPU-side typed mirror and the GPU-visible staging buffer. The mirror and
// the staging buffer always agree in length.
type stagingCore[T any] struct {
	label  string
	values []T
	buffer *wgpu.Buffer
}

// newStagingCore allocates the CPU mirror and the staging buffer with the
// given usage flags. The mirror is zero-initialized.
func newStagingCore[T any](device *wgpu.Device, label string, count int, usage wgpu.BufferUsage) (stagingCore[T], error) {
	values := make([]T, count)
	buffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Staging Buffer",
		Size:             uint64(len(wgpu.ToBytes(values))),
		Usage:            usage,
		MappedAtCreation: false,
	})
	if err != nil {
		return stagingCore[T]{}, fmt.Errorf("buffers: failed to create staging buffer %q: %w", label, err)
	}
	return stagingCore[T]{
		label:  label,
		values: values,
		buffer: buffer,
	}, nil
}

// ValuesAsSlice returns the CPU-side mirror. The slice is owned by the
// wrapper; callers mutate it in place before EncodeWrite, or read from it
// after ReadAndUnmapBuffer.
//
// Returns:
//   - []T: the mirror slice
func (s *stagingCore[T]) ValuesAsSlice() []T {
	return s.values
}

// SizeBytes returns the byte size of the mirror and the staging buffer.
//
// Returns:
//   - uint64: the size in bytes
func (s *stagingCore[T]) SizeBytes() uint64 {
	return uint64(len(wgpu.ToBytes(s.values)))
}

// Buffer returns the GPU staging buffer.
//
// Returns:
//   - *wgpu.Buffer: the staging buffer
func (s *stagingCore[T]) Buffer() *wgpu.Buffer {
	return s.buffer
}

// Release releases the staging buffer.
func (s *stagingCore[T]) Release() {
	if s.buffer != nil {
		s.buffer.Release()
		s.buffer = nil
	}
}

// WriteStagingBuffer moves typed CPU data into GPU-only buffers through an
// intermediate staging buffer. Direct CPU writes into storage/uniform buffers
// are unsafe or unsupported on some backends, so the transfer is a queue
// write into the staging buffer followed by a GPU-side copy into the target.
// The direction is fixed at construction; a WriteStagingBuffer can never be
// mapped for reading.
type WriteStagingBuffer[T any] struct {
	stagingCore[T]
}

// NewWriteStagingBuffer creates a CPU-to-GPU staging buffer holding count
// elements of T, all zeroed.
//
// Parameters:
//   - device: the device to allocate the staging buffer on
//   - label: debug label shown in graphics debuggers
//   - count: the number of T elements in the mirror
//
// Returns:
//   - *WriteStagingBuffer[T]: the new wrapper
//   - error: an error if buffer allocation fails
func NewWriteStagingBuffer[T any](device *wgpu.Device, label string, count int) (*WriteStagingBuffer[T], error) {
	core, err := newStagingCore[T](device, label, count, wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return &WriteStagingBuffer[T]{stagingCore: core}, nil
}

// SetValues replaces the mirror contents. The supplied slice must have the
// same length as the mirror; the staging buffer size is fixed at
// construction.
//
// Parameters:
//   - values: the new mirror contents
//
// Returns:
//   - error: an error if the length differs from the mirror length
func (s *WriteStagingBuffer[T]) SetValues(values []T) error {
	if len(values) != len(s.values) {
		return fmt.Errorf("buffers: staging buffer %q holds %d elements, got %d", s.label, len(s.values), len(values))
	}
	copy(s.values, values)
	return nil
}

// FillParallel populates the mirror by evaluating fn for every element index,
// splitting the index range into one chunk per worker. Useful for large seed
// uploads where fn is expensive (noise fields, initial particle states). The
// pool is transient; its workers exit after the idle timeout.
//
// Parameters:
//   - workers: the number of chunks/goroutines; values <= 1 fill serially
//   - fn: the element generator, called once per index
func (s *WriteStagingBuffer[T]) FillParallel(workers int, fn func(index int) T) {
	if workers <= 1 || len(s.values) < workers {
		for i := range s.values {
			s.values[i] = fn(i)
		}
		return
	}

	pool := worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)
	var wg sync.WaitGroup

	chunk := (len(s.values) + workers - 1) / workers
	for id, start := 0, 0; start < len(s.values); id, start = id+1, start+chunk {
		end := min(start+chunk, len(s.values))
		first := start

		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := first; i < end; i++ {
					s.values[i] = fn(i)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// EncodeWrite uploads the mirror into the target buffer. The mirror bytes are
// enqueued into the staging buffer via the queue, then a staging-to-target
// copy is recorded into the encoder. The two steps are not synchronized
// explicitly: the GPU API guarantees a queue write issued before an encoder
// submission is visible to that submission, so the copy sees the new bytes as
// long as the encoder is submitted after this call in program order.
//
// Parameters:
//   - queue: the queue to enqueue the CPU-to-staging write on
//   - encoder: the encoder to record the staging-to-target copy into
//   - target: the GPU-only destination buffer (must have CopyDst usage)
func (s *WriteStagingBuffer[T]) EncodeWrite(queue *wgpu.Queue, encoder *wgpu.CommandEncoder, target *wgpu.Buffer) {
	queue.WriteBuffer(s.buffer, 0, wgpu.ToBytes(s.values))
	encoder.CopyBufferToBuffer(s.buffer, 0, target, 0, s.SizeBytes())
}

// ReadStagingBuffer moves GPU-only buffer contents back to typed CPU data
// through an intermediate staging buffer. The direction is fixed at
// construction; a ReadStagingBuffer can never be used as a write source.
//
// The read protocol is: EncodeRead, submit the encoder, wait for the GPU to
// finish (device poll), MapBuffer, observe completion, ReadAndUnmapBuffer.
type ReadStagingBuffer[T any] struct {
	stagingCore[T]
}

// NewReadStagingBuffer creates a GPU-to-CPU staging buffer holding count
// elements of T, all zeroed.
//
// Parameters:
//   - device: the device to allocate the staging buffer on
//   - label: debug label shown in graphics debuggers
//   - count: the number of T elements in the mirror
//
// Returns:
//   - *ReadStagingBuffer[T]: the new wrapper
//   - error: an error if buffer allocation fails
func NewReadStagingBuffer[T any](device *wgpu.Device, label string, count int) (*ReadStagingBuffer[T], error) {
	core, err := newStagingCore[T](device, label, count, wgpu.BufferUsageMapRead|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return &ReadStagingBuffer[T]{stagingCore: core}, nil
}

// EncodeRead records a GPU-side copy from the source buffer into the staging
// buffer. The result is valid for the CPU only after the encoder's commands
// have been submitted and executed, and the staging buffer has been mapped.
//
// Parameters:
//   - encoder: the encoder to record the copy into
//   - source: the GPU-only source buffer (must have CopySrc usage)
func (s *ReadStagingBuffer[T]) EncodeRead(encoder *wgpu.CommandEncoder, source *wgpu.Buffer) {
	encoder.CopyBufferToBuffer(source, 0, s.buffer, 0, s.SizeBytes())
}

// MapBuffer begins an asynchronous map request for read access. The callback
// is invoked by the API's polling mechanism when mapping completes or fails;
// when nil, a no-op completion handler is installed and the caller must still
// poll the device and call ReadAndUnmapBuffer before reusing the buffer.
//
// Parameters:
//   - callback: completion handler, or nil for a no-op handler
//
// Returns:
//   - error: an error if the map request could not be started
func (s *ReadStagingBuffer[T]) MapBuffer(callback func(wgpu.BufferMapAsyncStatus)) error {
	if callback == nil {
		callback = func(wgpu.BufferMapAsyncStatus) {}
	}
	if err := s.buffer.MapAsync(wgpu.MapModeRead, 0, s.SizeBytes(), callback); err != nil {
		return fmt.Errorf("buffers: failed to map staging buffer %q: %w", s.label, err)
	}
	return nil
}

// ReadAndUnmapBuffer copies the mapped byte range into the mirror and unmaps
// the staging buffer. It may only be called after the map completion from
// MapBuffer has been observed; calling it earlier is undefined per the
// underlying API and is intentionally not guarded here, matching the wrapped
// API's own asynchronous contract.
func (s *ReadStagingBuffer[T]) ReadAndUnmapBuffer() {
	mapped := s.buffer.GetMappedRange(0, uint(s.SizeBytes()))
	copy(wgpu.ToBytes(s.values), mapped)
	s.buffer.Unmap()
}
