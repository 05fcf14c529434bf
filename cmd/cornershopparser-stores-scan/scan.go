package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cornershopparser/internal/apis/cornershop/responses"
)

type groupLister interface {
	ListBranchGroups(ctx context.Context, locality, country string) ([]responses.BranchGroup, error)
}

type scanner struct {
	api      groupLister
	country  string
	workers  int
	progress time.Duration
	log      *slog.Logger

	done, failed atomic.Int64
}

// scan lists the stores for every address. The groups come back in input
// order so first-seen dedup follows the address file.
func (s *scanner) scan(ctx context.Context, addrs []string) []responses.BranchGroup {
	results := make([][]responses.BranchGroup, len(addrs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < max(s.workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.one(ctx, addrs[i])
			}
		}()
	}

	stopProgress := s.reportProgress(len(addrs))
	defer stopProgress()

feed:
	for i := range addrs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	var all []responses.BranchGroup
	for _, groups := range results {
		all = append(all, groups...)
	}
	return all
}

func (s *scanner) one(ctx context.Context, addr string) []responses.BranchGroup {
	defer s.done.Add(1)

	groups, err := s.api.ListBranchGroups(ctx, addr, s.country)
	if err != nil {
		s.failed.Add(1)
		s.log.Warn("stores: address failed", "address", addr, "err", err)
		return nil
	}
	return groups
}

func (s *scanner) reportProgress(total int) (stop func()) {
	if s.progress <= 0 {
		return func() {}
	}
	t := time.NewTicker(s.progress)
	quit := make(chan struct{})
	go func() {
		for {
			select {
			case <-t.C:
				s.log.Info("stores: progress", "done", s.done.Load(), "failed", s.failed.Load(), "total", total)
			case <-quit:
				return
			}
		}
	}()
	return func() {
		t.Stop()
		close(quit)
	}
}

// readAddresses returns the non-blank lines of r; lines starting with #
// are comments.
func readAddresses(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read addresses: %w", err)
	}
	return out, nil
}
