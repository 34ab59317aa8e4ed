// Command replay rebuilds an exported match log and checks that replaying
// its moves reproduces the recorded state. With -judge it also seals a
// judgment scroll over the rebuilt board.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"beadloom/domain/config"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/judgment"
	"beadloom/domain/replay"
)

func main() {
	judge := flag.Bool("judge", false, "print the judgment scroll for the rebuilt board")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-judge] <match-export.json>\n", os.Args[0])
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read export: %v", err)
	}

	var snapshot aggregates.MatchSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Fatalf("decode export: %v", err)
	}

	match, err := replay.FromLog(&snapshot, config.DefaultDomainConfig())
	if err != nil {
		log.Fatalf("rebuild: %v", err)
	}
	if err := replay.Verify(match); err != nil {
		log.Fatalf("verify: %v", err)
	}

	rebuilt := match.Snapshot()
	fmt.Printf("match %s verified: %d players, %d beads, %d edges, %d moves\n",
		rebuilt.ID, len(rebuilt.Players), len(rebuilt.Beads), len(rebuilt.Edges), len(rebuilt.Moves))

	if *judge {
		scroll := judgment.Judge(match)
		out, err := json.MarshalIndent(scroll, "", "  ")
		if err != nil {
			log.Fatalf("encode scroll: %v", err)
		}
		fmt.Println(string(out))
	}
}
