package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/d60-Lab/tripmarket/config"
	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/internal/repository"
	"github.com/d60-Lab/tripmarket/internal/service"
	"github.com/d60-Lab/tripmarket/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 { return 0 }
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 { k = 0 }
	if k >= len(xs) { k = len(xs)-1 }
	return xs[k]
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	must(0, database.Migrate(db))

	convRepo := repository.NewConversationRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	unread := service.NewUnreadService(notifRepo, convRepo, nil)

	// params
	CONVS := 200             // conversations for the subject user
	MSGS := 20               // messages per conversation
	NOTIFS := 5000           // unread notifications for the subject user
	READS := 1000            // summarize/count iterations
	if s := os.Getenv("CONVS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { CONVS = v } }
	if s := os.Getenv("MSGS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { MSGS = v } }
	if s := os.Getenv("NOTIFS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { NOTIFS = v } }
	if s := os.Getenv("READS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { READS = v } }

	ctx := context.Background()
	subject := uuid.New().String()

	// seed conversations + messages
	for i := 0; i < CONVS; i++ {
		peer := uuid.New().String()
		conv := must(convRepo.Start(ctx, peer, subject, uuid.New().String(), "hello"))
		for j := 1; j < MSGS; j++ {
			sender := subject
			if j%2 == 0 { sender = peer }
			must(convRepo.AppendMessage(ctx, conv.ID, sender, fmt.Sprintf("msg %d", j)))
		}
	}

	// seed unread notifications across a pool of request ids
	kinds := []string{model.NotificationKindMessage, model.NotificationKindStatusUpdate, "booking reminder"}
	requests := make([]string, 50)
	for i := range requests { requests[i] = uuid.New().String() }
	for i := 0; i < NOTIFS; i++ {
		payload := map[string]string{"kind": kinds[rand.Intn(len(kinds))]}
		if rand.Intn(10) > 0 { payload["request_id"] = requests[rand.Intn(len(requests))] }
		raw := must(json.Marshal(payload))
		must(notifRepo.Create(ctx, subject, datatypes.JSON(raw)))
	}

	sumDur := make([]time.Duration, 0, READS)
	cntDur := make([]time.Duration, 0, READS)
	for i := 0; i < READS; i++ {
		st := time.Now()
		must(unread.Summarize(ctx, subject))
		sumDur = append(sumDur, time.Since(st))

		st = time.Now()
		must(unread.CountUnreadMessages(ctx, subject))
		cntDur = append(cntDur, time.Since(st))
	}

	var sSum, cSum time.Duration
	for _, d := range sumDur { sSum += d }
	for _, d := range cntDur { cSum += d }
	fmt.Printf("CONVS=%d MSGS=%d NOTIFS=%d READS=%d\n", CONVS, MSGS, NOTIFS, READS)
	fmt.Printf("Summarize: avg=%v p95=%v p99=%v\n", sSum/time.Duration(len(sumDur)), pct(sumDur, 0.95), pct(sumDur, 0.99))
	fmt.Printf("CountUnreadMessages: avg=%v p95=%v p99=%v\n", cSum/time.Duration(len(cntDur)), pct(cntDur, 0.95), pct(cntDur, 0.99))
}
