package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/d60-Lab/tripmarket/internal/poller"
	"github.com/d60-Lab/tripmarket/internal/service"
)

// pollbench drives the sync controller against a synthetic refresh endpoint
// with randomized latency, mixing background ticks with mutation refreshes,
// and reports how many fetches were actually dispatched vs. suppressed.
func main() {
	TICKS := 2000
	MUTS := 200
	MAXLAT := 5 // ms
	if s := os.Getenv("TICKS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { TICKS = v } }
	if s := os.Getenv("MUTS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { MUTS = v } }
	if s := os.Getenv("MAXLAT"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { MAXLAT = v } }

	var fetches atomic.Int64
	fetch := func(ctx context.Context) ([]service.ConversationView, error) {
		fetches.Add(1)
		time.Sleep(time.Duration(rand.Intn(MAXLAT)+1) * time.Millisecond)
		return []service.ConversationView{{PublicID: "bench", UpdatedAt: time.Now()}}, nil
	}

	p := poller.New(fetch, poller.Options{Interval: time.Hour, RequestTimeout: time.Second})
	p.Prime(nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < MUTS; i++ {
			_ = p.RefreshNow(context.Background())
		}
		close(done)
	}()

	st := time.Now()
	for i := 0; i < TICKS; i++ {
		p.Tick()
	}
	<-done
	p.Stop()

	total := int64(TICKS + MUTS)
	dispatched := fetches.Load()
	fmt.Printf("TICKS=%d MUTS=%d MAXLAT=%dms elapsed=%v\n", TICKS, MUTS, MAXLAT, time.Since(st))
	fmt.Printf("dispatched=%d suppressed=%d final_list=%d\n", dispatched, total-dispatched, len(p.Snapshot()))
}
