//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type TripPlanEvent struct {
	TripID      uuid.UUID `json:"trip_id"`
	Origin      point     `json:"origin"`
	Destination point     `json:"destination"`
	TripTime    time.Time `json:"trip_time"`
	ArriveBy    bool      `json:"arrive_by"`
	TripTypes   []string  `json:"trip_types"`
	Purpose     *string   `json:"purpose,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	types := flag.String("types", "transit,walk,paratransit,taxi", "Comma separated trip types")
	wait := flag.Duration("wait", 30*time.Second, "How long to wait for stream:trip:planned")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие (Boston, South Station -> Back Bay)
	event := TripPlanEvent{
		TripID:      uuid.New(),
		Origin:      point{Lat: 42.3523, Lon: -71.0552},
		Destination: point{Lat: 42.3473, Lon: -71.0753},
		TripTime:    time.Now().Add(time.Hour).UTC(),
		TripTypes:   strings.Split(*types, ","),
		Purpose:     ptr("medical"),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем хвост стрима результатов до публикации
	lastID := "$"
	if last, err := client.XRevRangeN(ctx, "stream:trip:planned", "+", "-", 1).Result(); err == nil && len(last) > 0 {
		lastID = last[0].ID
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:trip:plan",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published trip %s as message %s\n", event.TripID, result)
	fmt.Printf("Payload: %s\n", data)

	// Ждем результат от worker
	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"stream:trip:planned", lastID},
			Block:   2 * time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read results: %v", err)
		}

		for _, msg := range streams[0].Messages {
			lastID = msg.ID
			raw, _ := msg.Values["data"].(string)
			if strings.Contains(raw, event.TripID.String()) {
				fmt.Printf("Planned: %s\n", raw)
				return
			}
		}
	}

	fmt.Println("No result received, is the worker running?")
}
