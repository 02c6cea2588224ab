package bitfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guiguan/caster"
	"github.com/npillmayer/bitvec"
)

// Fragment size defaults, chosen by file size.
const (
	smallFrag  = 256
	mediumFrag = 2048
	largeFrag  = 8192

	tenKb = 10240
	oneMb = 1048576
)

// Progress is broadcast to subscribers while a file loads.
type Progress struct {
	BitsLoaded int
	Done       bool
}

// File represents an OS file being loaded as a bit vector.
type File struct {
	path string
	info os.FileInfo
	file *os.File
	cast *caster.Caster // broadcaster for async loading progress
	done chan struct{}
	vec  *bitvec.Vector
	err  error // valid after done is closed
}

// Load opens a file and starts loading it as a bit vector in the
// background. Clients may indicate a vector capacity (0 derives it from
// the file size, leaving no insertion headroom; an empty file gets
// capacity 1) and a recommended
// fragment length in bytes (0 selects a sensible default). Opening the
// file is always done synchronously; call Vector to wait for the content.
func Load(name string, capacity int, fragSize int) (*File, error) {
	f, err := openFile(name)
	if err != nil {
		return nil, err
	}
	nbits := int(f.info.Size()) * 8
	if capacity <= 0 {
		capacity = nbits
	}
	if capacity < nbits {
		f.file.Close()
		return nil, fmt.Errorf("%w: file holds %d bits, capacity %d",
			bitvec.ErrCapacityExhausted, nbits, capacity)
	}
	if capacity == 0 {
		capacity = 1 // empty file, still a valid vector
	}
	if fragSize <= 0 {
		switch size := f.info.Size(); {
		case size < tenKb:
			fragSize = smallFrag
		case size < oneMb:
			fragSize = mediumFrag
		default:
			fragSize = largeFrag
		}
	}
	vec, err := bitvec.New(capacity)
	if err != nil {
		f.file.Close()
		return nil, err
	}
	f.vec = vec
	go f.loadAllFragments(fragSize)
	return f, nil
}

// openFile opens an OS file and collects some useful information on it,
// checking for error conditions.
func openFile(name string) (*File, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("bitfile: %s is not a regular file", name)
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{
		path: name,
		info: fi,
		file: file,
		cast: caster.New(nil),
		done: make(chan struct{}),
	}, nil
}

// Vector blocks until loading has finished and returns the loaded
// vector, or the I/O error that interrupted loading.
func (f *File) Vector() (*bitvec.Vector, error) {
	<-f.done
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

// Err returns the loading error, if any. Valid after Vector returned.
func (f *File) Err() error { return f.err }

// Subscribe returns a channel of Progress updates and whether the
// subscription succeeded; it fails once loading has finished. The channel
// closes when loading finishes or the context is canceled.
func (f *File) Subscribe(ctx context.Context) (<-chan interface{}, bool) {
	return f.cast.Sub(ctx, 1)
}

// loadAllFragments is the background loading goroutine: it reads the
// file fragment by fragment, appends the bits and broadcasts progress.
func (f *File) loadAllFragments(fragSize int) {
	defer close(f.done)
	defer f.cast.Close()
	defer f.file.Close()

	tracer().Infof("bitfile loads %s (%d bytes) in fragments of %d",
		f.path, f.info.Size(), fragSize)
	buf := make([]byte, fragSize)
	loaded := 0
	for {
		n, err := f.file.Read(buf)
		for _, by := range buf[:n] {
			for j := 0; j < 8; j++ {
				if perr := f.vec.PushBack(by>>uint(j)&1 != 0); perr != nil {
					f.err = perr
					return
				}
			}
		}
		loaded += n * 8
		if n > 0 {
			f.cast.TryPub(Progress{BitsLoaded: loaded})
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				f.err = err
			}
			break
		}
	}
	f.cast.TryPub(Progress{BitsLoaded: loaded, Done: true})
	tracer().Infof("bitfile finished loading %s: %d bits", f.path, loaded)
}
