package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/moka/components"
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 2000, "The number of entities to generate.")
	layerCount := flag.Int("layers", 4, "The number of layers entities are spread over.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *entityCount < 1 || *layerCount < 1 {
		log.Fatalf("entities and layers must be positive")
	}

	log.Println("Starting scene stress test...")

	dir, err := os.MkdirTemp("", "scene-stress")
	if err != nil {
		log.Fatalf("Failed to create scene directory: %v", err)
	}
	defer os.RemoveAll(dir)

	log.Printf("Generating %d entity documents over %d layers...\n", *entityCount, *layerCount)
	manifest, err := generateScene(dir, *entityCount, *layerCount)
	if err != nil {
		log.Fatalf("Failed to generate scene: %v", err)
	}

	registry := scene.NewRegistry()
	components.Register(registry)
	triggers := scene.NewTriggers()
	components.RegisterTriggers(triggers, log.Default())

	rt := ecs.NewRuntime()
	loader := scene.NewLoader(rt, registry, scene.WithTriggers(triggers), scene.WithLogger(log.Default()))

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Layers:         *layerCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	loadStart := time.Now()
	if err := loader.LoadScene(manifest); err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	report.LoadTime = time.Since(loadStart)
	log.Printf("Loaded %d entities in %s.\n", rt.Len(), report.LoadTime)

	scheduler := ecs.NewScheduler(rt)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(float64(deltaTime) / float64(time.Second)); err != nil {
				log.Fatalf("Frame failed: %v", err)
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.Alive = rt.Len()
	report.Phases = scheduler.GetStats().Phases
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
