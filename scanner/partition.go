package scanner

// partition is one worker's disjoint-but-overlapping byte-offset range
// [Start, End).
type partition struct {
	Start, End int
}

// maxOverlapBytes bounds the per-worker overlap regardless of how large
// maxCols*minRows*elementSize computes to, keeping worst-case redundant
// work small even for a generous column search.
const maxOverlapBytes = 4096

// overlapFor returns the number of extra byte offsets each non-final
// worker scans past its chunk boundary. A candidate starting within a
// worker's tail may need up to maxCols*minRows*elementSize bytes of
// body extending past the cut, so workers scan that much further to
// ensure every valid start offset is examined by at least one worker
// (deduplication absorbs the resulting redundancy).
func overlapFor(maxCols, minRows, elementSize int) int {
	need := maxCols * minRows * elementSize
	if need > maxOverlapBytes {
		return maxOverlapBytes
	}
	return need
}

// partitionRange splits [0, limit) into up to workers disjoint-start
// partitions, each (except the last) extended by overlap byte offsets
// past its chunk boundary. Partitions with Start >= End are omitted.
func partitionRange(limit, workers, overlap int) []partition {
	if limit <= 0 || workers <= 0 {
		return nil
	}
	chunkSize := limit / workers
	if chunkSize < 1 {
		chunkSize = 1
	}

	parts := make([]partition, 0, workers)
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		if start >= limit {
			break
		}
		var end int
		if i == workers-1 {
			end = limit
		} else {
			end = start + chunkSize + overlap
			if end > limit {
				end = limit
			}
		}
		if end <= start {
			continue
		}
		parts = append(parts, partition{Start: start, End: end})
	}
	return parts
}
