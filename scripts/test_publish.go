//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Publishes a fake position report to the positions stream and then tails the
// arrival-alert stream, to exercise the worker pipeline end to end without a
// driver device.

type PositionReport struct {
	BusID      uuid.UUID `json:"busId"`
	BusNumber  string    `json:"busNumber"`
	ScheduleID uuid.UUID `json:"scheduleId"`
	Lat        float64   `json:"latitude"`
	Lng        float64   `json:"longitude"`
	SpeedKmh   float64   `json:"speed"`
	ReportedAt time.Time `json:"reportedAt"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	busNumber := flag.String("bus", "OC-07", "bus number to report")
	lat := flag.Float64("lat", 23.268104, "latitude")
	lng := flag.Float64("lng", 77.457846, "longitude")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	report := PositionReport{
		BusID:      uuid.New(),
		BusNumber:  *busNumber,
		ScheduleID: uuid.New(),
		Lat:        *lat,
		Lng:        *lng,
		SpeedKmh:   24,
		ReportedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(report)
	if err != nil {
		log.Fatalf("Failed to marshal report: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:positions:reports",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish report: %v", err)
	}

	fmt.Printf("Report published\n")
	fmt.Printf("   Stream: stream:positions:reports\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Bus: %s at %.6f, %.6f\n", report.BusNumber, report.Lat, report.Lng)

	fmt.Printf("\nWaiting for alerts on stream:arrivals:alerts...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for arrival alert (the bus may not be near a stop)")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:arrivals:alerts", "0"},
				Count:   10,
				Block:   0,
			}).Result()
			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var alert map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &alert); err != nil {
						continue
					}

					if alert["busNumber"] == report.BusNumber {
						fmt.Printf("\nArrival alert received!\n")
						prettyJSON, _ := json.MarshalIndent(alert, "", "  ")
						fmt.Printf("%s\n", prettyJSON)
						return
					}
				}
			}
		}
	}
}
