package checksum

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

const bufferSize = 64 * 1024 // 64KB buffer

// Windows holds xxhash digests of the sampled start, middle and end ranges of a file
type Windows struct {
	Start  uint64
	Middle uint64
	End    uint64
}

// Span is a byte range [Offset, Offset+Length) inside a file
type Span struct {
	Offset int64
	Length int64
}

// WindowSpans returns the start, middle and end spans sampled for a file of
// the given size. Spans are clipped to the file so files shorter than one
// window are covered completely by the start span.
func WindowSpans(size, window int64) [3]Span {
	if window <= 0 || size <= 0 {
		return [3]Span{}
	}

	n := min(window, size)
	mid := size / 2
	return [3]Span{
		{Offset: 0, Length: n},
		{Offset: mid, Length: min(window, size-mid)},
		{Offset: size - n, Length: n},
	}
}

// SampleWindows digests the sampled windows of the file at path. The file is
// opened once and closed before returning.
func SampleWindows(fsys afero.Fs, path string, size, window int64) (Windows, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return Windows{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	spans := WindowSpans(size, window)
	buf := make([]byte, min(window, max(size, 0)))
	var sums [3]uint64
	for i, span := range spans {
		b := buf[:span.Length]
		if _, err := file.ReadAt(b, span.Offset); err != nil && err != io.EOF {
			return Windows{}, fmt.Errorf("read window at %d: %w", span.Offset, err)
		}
		sums[i] = xxhash.Sum64(b)
	}

	return Windows{Start: sums[0], Middle: sums[1], End: sums[2]}, nil
}

// CalculateXXHash streams r through xxhash and returns the 64-bit digest
func CalculateXXHash(r io.Reader) (uint64, error) {
	h := xxhash.New()
	if _, err := io.CopyBuffer(h, r, make([]byte, bufferSize)); err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	return h.Sum64(), nil
}

// CalculateFileXXHash digests the whole file at path
func CalculateFileXXHash(fsys afero.Fs, path string) (uint64, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return CalculateXXHash(file)
}

// EqualFiles compares two files byte for byte. Both files are read in
// lockstep and closed before returning.
func EqualFiles(fsys afero.Fs, pathA, pathB string) (bool, error) {
	a, err := fsys.Open(pathA)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", pathA, err)
	}
	defer a.Close()

	b, err := fsys.Open(pathB)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", pathB, err)
	}
	defer b.Close()

	return EqualReaders(a, b)
}

// EqualReaders reports whether two readers yield identical byte streams
func EqualReaders(a, b io.Reader) (bool, error) {
	bufA := make([]byte, bufferSize)
	bufB := make([]byte, bufferSize)

	for {
		nA, errA := io.ReadFull(a, bufA)
		nB, errB := io.ReadFull(b, bufB)

		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("read: %w", errA)
		}
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("read: %w", errB)
		}

		if nA != nB || !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}

		// A short or empty read means both streams ended at the same offset.
		if errA != nil || errB != nil {
			return errA != nil && errB != nil, nil
		}
	}
}
