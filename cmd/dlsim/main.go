// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Command dlsim loads a circuit description, runs the event-driven
// simulation for a given amount of simulated time and prints the resulting
// node values and driver statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"github.com/dlsim/dlsim"
	"github.com/dlsim/dlsim/internal/cktfile"
)

func main() {
	fs := flag.NewFlagSet("dlsim", flag.ExitOnError)
	var (
		circuitPath = fs.String("f", "", "circuit description file (YAML)")
		until       = fs.Uint64("until", 1000, "simulated time to run until")
		settleLimit = fs.Int("settle-limit", 0, "per-timestamp iteration cap (0 = default)")
		watch       = fs.String("watch", "", "comma separated node names to trace")
		ignore      = fs.Bool("ignore-unknown", false, "skip components of unknown kind instead of failing")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("DLSIM")); err != nil {
		log.Fatal(err)
	}
	if *circuitPath == "" {
		log.Fatal("no circuit file given, use -f")
	}

	opts := cktfile.Options{}
	if *ignore {
		opts.UnknownKind = cktfile.UnknownKindIgnore
	}
	ckt, err := cktfile.LoadFile(*circuitPath, opts)
	if err != nil {
		log.Fatal(err)
	}

	sim, err := ckt.NewSimulator(dlsim.Config{SettleLimit: *settleLimit})
	if err != nil {
		log.Fatal(err)
	}

	var watched []dlsim.NetID
	var names []string
	if *watch != "" {
		for _, name := range strings.Split(*watch, ",") {
			name = strings.TrimSpace(name)
			id, ok := ckt.Nodes[name]
			if !ok {
				log.Fatalf("unknown node %q", name)
			}
			watched = append(watched, id)
			names = append(names, name)
		}
	}

	rec := dlsim.NewRecorder(sim, watched...)
	if err := rec.Run(dlsim.Timestamp(*until)); err != nil {
		log.Fatal(err)
	}

	for i, id := range watched {
		fmt.Printf("%s:\n", names[i])
		for _, s := range rec.Samples(id) {
			fmt.Printf("  t=%-8d %s\n", s.Time, s.Value)
		}
	}

	fmt.Println("final node values:")
	nodeNames := make([]string, 0, len(ckt.Nodes))
	for name := range ckt.Nodes {
		nodeNames = append(nodeNames, name)
	}
	sort.Strings(nodeNames)
	for _, name := range nodeNames {
		v, err := sim.Resolve(ckt.Nodes[name])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  %-16s %s\n", name, v)
	}

	st := sim.Stats()
	fmt.Printf("t=%d events=%d nodes=%d components=%d\n",
		st.Time, st.EventsProcessed, st.Nodes, st.Components)
}
