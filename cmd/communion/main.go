package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/communion/audio"
	"github.com/lixenwraith/communion/breath"
	"github.com/lixenwraith/communion/event"
	"github.com/lixenwraith/communion/parameter"
	"github.com/lixenwraith/communion/physics"
	"github.com/lixenwraith/communion/presence"
	"github.com/lixenwraith/communion/render"
	"github.com/lixenwraith/communion/slot"
	"github.com/lixenwraith/communion/sphere"
	"github.com/lixenwraith/communion/status"
)

var (
	addrFlag     = flag.String("addr", "", "Presence server address (empty = local simulator)")
	capacityFlag = flag.Int("capacity", parameter.SlotCapacityDefault, "Maximum visible shards")
	seedFlag     = flag.Uint64("seed", 0, "Simulator seed (0 = time-based)")
	muteFlag     = flag.Bool("mute", false, "Disable audio")
	debugFlag    = flag.String("debug", "", "Write debug log to file")
)

func main() {
	// Panic Recovery: restore the terminal before the stack trace prints
	var screen tcell.Screen
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\ncommunion crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	// The TUI owns stdout; debug logging goes to a file or nowhere
	log.SetOutput(io.Discard)
	if *debugFlag != "" {
		f, err := os.OpenFile(*debugFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	queue := event.NewQueue()
	tracker := &status.Tracker{}

	// Audio is best-effort; headless or deviceless machines run silent
	audioEngine := audio.NewEngine()
	audioOK := false
	if !*muteFlag {
		if err := audioEngine.Initialize(); err == nil {
			audioOK = true
			defer audioEngine.Cleanup()
		} else {
			log.Printf("audio unavailable: %v", err)
		}
	}

	// Presence source: remote feed or local simulator
	var source presence.Source
	var simulator *presence.Simulator
	if *addrFlag != "" {
		client := presence.NewClient(presence.DefaultClientConfig(*addrFlag))
		client.OnRoster = func(roster presence.Roster) {
			queue.Push(event.Event{
				Type:    event.TypeRosterUpdated,
				Payload: event.RosterUpdatedPayload{Roster: roster},
			})
		}
		client.OnConnectionChange = func(connected bool) {
			tracker.Connected.Store(connected)
			if connected {
				tracker.Reconnects.Add(1)
				queue.Push(event.Event{Type: event.TypePresenceRestored})
			} else {
				queue.Push(event.Event{Type: event.TypePresenceLost})
			}
		}
		source = client
	} else {
		seed := *seedFlag
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		simulator = presence.NewSimulator(seed)
		source = simulator
	}
	if err := source.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start presence source: %v\n", err)
		os.Exit(1)
	}
	defer source.Stop()

	manager := slot.NewManager(*capacityFlag)
	clock := breath.NewClock(time.Now())
	scene := render.NewScene(screen)

	// Input loop feeds quit/resize back to the frame loop
	quitCh := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			switch tev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case tev.Key() == tcell.KeyEscape,
					tev.Key() == tcell.KeyCtrlC,
					tev.Rune() == 'q':
					close(quitCh)
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return // Screen finalized
			}
		}
	}()

	if simulator != nil {
		tracker.Connected.Store(true)
	}

	run(screen, scene, manager, clock, source, simulator, queue, audioEngine, audioOK, tracker, quitCh)
}

// run is the frame loop: animate every tick, reconcile once per cycle
func run(
	screen tcell.Screen,
	scene *render.Scene,
	manager *slot.Manager,
	clock *breath.Clock,
	source presence.Source,
	simulator *presence.Simulator,
	queue *event.Queue,
	audioEngine *audio.Engine,
	audioOK bool,
	tracker *status.Tracker,
	quitCh chan struct{},
) {
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	lastCycle := int64(-1)
	spinAngle := 0.0

	// The spacing floor depends on the full slot lattice, not the head
	// count: slots keep their lattice index, so neighboring polar indices
	// can be occupied at any population
	orbitRadius := sphere.MinSafeRadius(manager.Capacity(), sphere.ShardRadius(1),
		parameter.GlobeRadius, parameter.OrbitClearanceBuffer)
	targetRadius := orbitRadius

	for {
		select {
		case <-quitCh:
			return
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now

			st := clock.StateAt(now)

			if st.Cycle != lastCycle {
				queue.Push(event.Event{
					Type:    event.TypeCycleCompleted,
					Payload: event.CycleCompletedPayload{Cycle: st.Cycle},
				})
				if simulator != nil {
					simulator.Advance()
				}
				lastCycle = st.Cycle
				log.Printf("status %s", tracker.Snapshot())
			}

			if manager.ShouldReconcile(st.Phase, st.Cycle) {
				roster := source.Roster()
				result := manager.Reconcile(roster, st.Cycle)
				if result.Skipped {
					tracker.SkippedCycles.Add(1)
				} else {
					tracker.Reconciliations.Add(1)
					tracker.Entered.Add(int64(len(result.Entered)))
					tracker.Exited.Add(int64(len(result.Exited)))
					tracker.Evicted.Add(int64(len(result.Evicted)))
					publishReconciliation(queue, manager, result)
					targetRadius = retune(manager, result, tracker)
					log.Printf("reconcile cycle=%d visible=%d entered=%d exited=%d evicted=%d waiting=%d",
						st.Cycle, result.VisibleCount, len(result.Entered),
						len(result.Exited), len(result.Evicted), result.Unassigned)
				}
			}

			manager.UpdateAnimations(delta)

			for _, ev := range queue.Consume() {
				switch ev.Type {
				case event.TypeRosterUpdated:
					if p, ok := ev.Payload.(event.RosterUpdatedPayload); ok {
						log.Printf("roster update: %d present", len(p.Roster))
					}
				case event.TypeShardEntered:
					if audioOK {
						audioEngine.PlayEnter()
					}
				case event.TypeShardExited:
					if audioOK {
						audioEngine.PlayExit()
					}
				case event.TypePresenceLost:
					log.Printf("presence feed lost, holding last roster")
				case event.TypePresenceRestored:
					log.Printf("presence feed restored")
				}
			}

			dt := delta.Seconds()
			orbitRadius = physics.TrackSafeRadius(orbitRadius, targetRadius, dt)

			population := manager.Stats().Visible
			shardRadius := sphere.ShardRadius(population)
			radius := physics.OrbitRadius(orbitRadius, st.Depth)
			speed, clamped := physics.OrbitalVelocity(radius, st.Depth)
			if clamped {
				tracker.VelocityClamps.Add(1)
			}
			spinAngle += speed / radius * dt

			tracker.Frames.Add(1)
			tracker.Population.Store(int64(population))
			tracker.OrbitRadius.Set(radius)

			if audioOK {
				audioEngine.SetBreathDepth(st.Depth)
			}

			scene.Draw(manager, render.Frame{
				Breath:      st,
				SpinAngle:   spinAngle,
				WobbleTime:  now.Sub(start).Seconds(),
				OrbitRadius: radius,
				ShardRadius: shardRadius,
				Population:  population,
				Connected:   isConnected(source),
			})
		}
	}
}

// publishReconciliation turns a reconciliation result into shard events
func publishReconciliation(queue *event.Queue, manager *slot.Manager, result slot.ReconciliationResult) {
	for _, idx := range result.Entered {
		mood, _ := manager.Mood(idx)
		queue.Push(event.Event{
			Type:    event.TypeShardEntered,
			Payload: event.ShardPayload{SlotIndex: idx, Mood: mood},
		})
	}
	for _, idx := range result.Exited {
		mood, _ := manager.Mood(idx)
		queue.Push(event.Event{
			Type:    event.TypeShardExited,
			Payload: event.ShardPayload{SlotIndex: idx, Mood: mood},
		})
	}
}

// retune recomputes the safe orbit floor for the new population and
// verifies it against the full breath/wobble sweep in debug builds
func retune(manager *slot.Manager, result slot.ReconciliationResult, tracker *status.Tracker) float64 {
	// Shard size follows the head count; the spacing floor follows the
	// lattice the shards are actually placed on (the full slot capacity)
	population := result.VisibleCount
	shardRadius := sphere.ShardRadius(population)
	safe := sphere.MinSafeRadius(manager.Capacity(), shardRadius,
		parameter.GlobeRadius, parameter.OrbitClearanceBuffer)

	sweep := physics.VerifySweep(manager.VisibleIndices(), manager.Capacity(),
		shardRadius, parameter.GlobeRadius, safe)
	tracker.WorstGap.Set(sweep.Spacing.Distance - sweep.Spacing.Required)
	if sweep.HasCollision {
		tracker.SweepViolations.Add(1)
		log.Printf("sweep violation: pair=(%d,%d) dist=%.3f required=%.3f depth=%.2f t=%.2f",
			sweep.Spacing.PairA, sweep.Spacing.PairB,
			sweep.Spacing.Distance, sweep.Spacing.Required,
			sweep.SpacingDepth, sweep.SpacingWobbleTime)
	}

	return safe
}

func isConnected(source presence.Source) bool {
	if c, ok := source.(*presence.Client); ok {
		return c.Connected()
	}
	return true
}
