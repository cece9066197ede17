package dirmerklehash

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ResultNode is the output unit for one visited path: the path, its kind,
// and its digest. The root ResultNode is the walk's final output;
// intermediate nodes are collected only for reporting and are never consumed
// by the combination algorithm.
type ResultNode struct {
	Path   string
	Kind   EntryKind
	Digest Digest
}

// WalkOptions configures a Walker.
type WalkOptions struct {
	// CollectResults records a ResultNode for every visited path,
	// retrievable in path-sorted order from Results after the walk.
	CollectResults bool

	// MmapThreshold overrides the file size at which hashing switches to a
	// memory mapping. Zero selects LargeFileThreshold. The threshold is a
	// performance knob only and never changes digests.
	MmapThreshold int64
}

// Walker hashes one filesystem path, fanning directory children out across
// a caller-owned WorkerPool. A Walker is scoped to a single Walk invocation;
// construct a new one per top-level computation.
type Walker struct {
	pool      *WorkerPool
	threshold int64
	results   *resultCollector

	stop     chan struct{}
	stopOnce sync.Once
	failMu   sync.Mutex
	failErr  error
}

// NewWalker creates a Walker that schedules work through pool.
func NewWalker(pool *WorkerPool, opts WalkOptions) *Walker {
	threshold := opts.MmapThreshold
	if threshold <= 0 {
		threshold = LargeFileThreshold
	}

	walker := &Walker{
		pool:      pool,
		threshold: threshold,
		stop:      make(chan struct{}),
	}
	if opts.CollectResults {
		walker.results = newResultCollector()
	}
	return walker
}

// Walk hashes path, which may be a regular file, a symlink, or a directory.
// The root digest of a directory covers its entire tree; a file or symlink
// root returns that leaf's own digest with no combination step applied.
//
// Closing shutdownChan interrupts the walk with ErrShutdown; a nil channel
// disables interruption. Any I/O failure aborts the walk and propagates as
// a *HashError carrying the failing path; no partial digest is returned.
func (w *Walker) Walk(shutdownChan <-chan struct{}, path string) (ResultNode, error) {
	defer VerboseEnter()()

	// The walk's root runs on the caller's goroutine and occupies one pool
	// slot for the duration, so a pool of size one hashes strictly serially.
	w.pool.Acquire()
	defer w.pool.Release()

	node, err := w.visit(shutdownChan, path)
	if err != nil {
		// A sibling cancelled by another's failure reports a stop error;
		// the first recorded failure is the one worth surfacing.
		if first := w.failure(); first != nil {
			return ResultNode{}, first
		}
		return ResultNode{}, err
	}
	return node, nil
}

// Results returns the collected ResultNodes in byte-lexicographic path
// order. It returns nil unless the Walker was built with CollectResults.
func (w *Walker) Results() []ResultNode {
	if w.results == nil {
		return nil
	}
	return w.results.Nodes()
}

// fail records the walk's first error and stops not-yet-started work.
func (w *Walker) fail(err error) {
	w.failMu.Lock()
	if w.failErr == nil {
		w.failErr = err
	}
	w.failMu.Unlock()
	w.stopOnce.Do(func() { close(w.stop) })
}

// failure returns the first recorded error, or nil.
func (w *Walker) failure() error {
	w.failMu.Lock()
	defer w.failMu.Unlock()
	return w.failErr
}

// visit classifies path and applies the hashing rule for its kind. The
// classification uses Lstat so a symlink is detected as a symlink, never
// silently resolved to its target's kind.
func (w *Walker) visit(shutdownChan <-chan struct{}, path string) (ResultNode, error) {
	select {
	case <-shutdownChan:
		w.fail(ErrShutdown)
		return ResultNode{}, ErrShutdown
	case <-w.stop:
		return ResultNode{}, w.failure()
	default:
	}

	info, err := os.Lstat(path)
	if err != nil {
		herr := &HashError{Op: "lstat", Path: path, Err: err}
		w.fail(herr)
		return ResultNode{}, herr
	}

	var node ResultNode
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		digest, err := HashSymlink(path)
		if err != nil {
			w.fail(err)
			return ResultNode{}, err
		}
		node = ResultNode{Path: path, Kind: KindSymlink, Digest: digest}

	case mode.IsDir():
		return w.visitDir(shutdownChan, path)

	case mode.IsRegular():
		digest, err := hashFileWithThreshold(path, w.threshold)
		if err != nil {
			w.fail(err)
			return ResultNode{}, err
		}
		node = ResultNode{Path: path, Kind: KindFile, Digest: digest}

	default:
		herr := &HashError{Op: "classify", Path: path, Err: ErrUnsupportedEntry}
		w.fail(herr)
		return ResultNode{}, herr
	}

	if IsDebugEnabled("walk") {
		VerboseLog(3, "visit: %s %s -> %s", node.Kind, path, node.Digest.Hex())
	}
	if w.results != nil {
		w.results.Add(node)
	}
	return node, nil
}

// visitDir enumerates one directory level, hashes the children through the
// pool, and combines their records into the directory's digest. Sibling
// children run concurrently when pool tokens are available and inline on
// this goroutine otherwise; completion order does not matter because the
// records are combined in sorted name order.
func (w *Walker) visitDir(shutdownChan <-chan struct{}, path string) (ResultNode, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		herr := &HashError{Op: "readdir", Path: path, Err: err}
		w.fail(herr)
		return ResultNode{}, herr
	}

	// Sort entries for deterministic combination regardless of readdir order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	if IsDebugEnabled("walk") {
		VerboseLog(3, "visitDir: %s has %d entries", path, len(entries))
	}

	childNodes := make([]ResultNode, len(entries))
	childErrs := make([]error, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		childPath := filepath.Join(path, entry.Name())

		if w.pool.TryAcquire() {
			wg.Add(1)
			go func(slot int, childPath string) {
				defer wg.Done()
				defer w.pool.Release()
				childNodes[slot], childErrs[slot] = w.visit(shutdownChan, childPath)
			}(i, childPath)
		} else {
			childNodes[i], childErrs[i] = w.visit(shutdownChan, childPath)
		}
	}
	wg.Wait()

	// All children resolved or failed; a directory is never assigned a
	// digest computed from a subset of its children.
	for _, err := range childErrs {
		if err != nil {
			return ResultNode{}, err
		}
	}

	records := make([]DirEntry, len(entries))
	for i, child := range childNodes {
		records[i] = DirEntry{
			Name:   entries[i].Name(),
			Kind:   child.Kind,
			Digest: child.Digest,
		}
	}

	node := ResultNode{Path: path, Kind: KindDir, Digest: CombineEntries(records)}
	if w.results != nil {
		w.results.Add(node)
	}
	return node, nil
}
