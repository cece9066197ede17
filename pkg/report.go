package dirmerklehash

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/google/vectorio"
	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// resultCollector accumulates ResultNodes from concurrently completing walk
// tasks. Nodes are kept in a skiplist keyed by path, so iteration yields the
// stable path-sorted order regardless of completion order. The context slot
// carries the node's kind tag.
type resultCollector struct {
	mu   sync.Mutex
	list *zcsl.ZeroCopySkiplist[ResultNode, string, string]
}

func newResultCollector() *resultCollector {
	list := zcsl.MakeZeroCopySkiplist[ResultNode, string, string](
		16,
		func(node *ResultNode) string { return node.Path },
		func(node *ResultNode) int { return len(node.Path) + DigestSize },
		strings.Compare,
	)
	return &resultCollector{list: list}
}

// Add records one visited node. Paths are unique within a walk, so inserts
// never collide.
func (rc *resultCollector) Add(node ResultNode) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.list.Insert(&node, node.Kind.String())
}

// Nodes returns every recorded node in path-sorted order.
func (rc *resultCollector) Nodes() []ResultNode {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	nodes := make([]ResultNode, 0, rc.list.Length())
	for current := rc.list.First(); current != nil; current = current.Next() {
		nodes = append(nodes, *current.Item())
	}
	return nodes
}

// WriteResults writes one "<KIND> <path> -> <hex-digest>" line per node to
// f using vectored I/O, chunked to the system IOV_MAX limit.
func WriteResults(f *os.File, nodes []ResultNode) error {
	if len(nodes) == 0 {
		return nil
	}

	lines := make([][]byte, len(nodes))
	iovecs := make([]syscall.Iovec, len(nodes))
	totalSize := 0
	for i, node := range nodes {
		line := []byte(fmt.Sprintf("%s %s -> %s\n", node.Kind, node.Path, node.Digest.Hex()))
		lines[i] = line
		iovecs[i] = syscall.Iovec{Base: &line[0], Len: uint64(len(line))}
		totalSize += len(line)
	}

	maxIovecs, err := getSystemIOVMax()
	if err != nil {
		return fmt.Errorf("failed to get system IOV_MAX: %w", err)
	}

	totalWritten := 0
	for offset := 0; offset < len(iovecs); offset += maxIovecs {
		end := offset + maxIovecs
		if end > len(iovecs) {
			end = len(iovecs)
		}

		chunk := iovecs[offset:end]
		nw, err := vectorio.WritevRaw(uintptr(f.Fd()), chunk)
		if err != nil {
			return fmt.Errorf("failed to write result lines with vectorio: %w", err)
		}
		totalWritten += nw
	}

	if totalWritten != totalSize {
		return fmt.Errorf("result write incomplete: wrote %d bytes, expected %d", totalWritten, totalSize)
	}
	return nil
}
