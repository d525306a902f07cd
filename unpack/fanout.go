// Copyright (C) 2024 The wt-blk Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package unpack

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Progress is the shared atomic (total, remaining) pair exposed
// during a fan-out (spec.md §5): total is set once at the start,
// remaining is decremented by each worker as it finishes a member.
type Progress struct {
	total     atomic.Int64
	remaining atomic.Int64
}

// Total returns the fan-out's fixed member count.
func (p *Progress) Total() int64 { return p.total.Load() }

// Remaining returns the number of members not yet decoded.
func (p *Progress) Remaining() int64 { return p.remaining.Load() }

// UnpackAll fans out over every inner file, decoding and rendering
// BLK members per opts. Workers share this Unpacker's NameMap and
// Dict read-only; no locking guards the decode path itself (spec.md
// §5, §9's "concurrency discipline"). workers <= 0 defaults to
// runtime.GOMAXPROCS(0).
//
// Output ordering always matches the archive's inner directory order
// regardless of which worker finishes first, since each worker writes
// to its own preassigned slot in the result slice.
//
// Cancelling ctx stops scheduling further members; members already
// dispatched to a worker run to completion rather than being aborted
// mid-decode (spec.md §5's "partial in-flight decoders do not poll
// for cancellation"). In opts.Strict mode, the first per-file error
// has the same effect: remaining unscheduled members are dropped and
// that error is returned.
func (u *Unpacker) UnpackAll(ctx context.Context, opts Options, workers int) ([]Entry, *Progress, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(u.Files)
	entries := make([]Entry, n)

	progress := &Progress{}
	progress.total.Store(int64(n))
	progress.remaining.Store(int64(n))

	jobs := make(chan int, workers)
	stop := make(chan struct{})
	var stopOnce sync.Once
	errs := make(chan error, workers)

	go func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case jobs <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				e := decodeMember(u, u.Files[i], opts)
				entries[i] = e
				progress.remaining.Add(-1)
				if e.Err != nil && opts.Strict {
					select {
					case errs <- e.Err:
					default:
					}
					stopOnce.Do(func() { close(stop) })
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		return entries, progress, err
	}
	if err := ctx.Err(); err != nil {
		return entries, progress, err
	}
	return entries, progress, nil
}
