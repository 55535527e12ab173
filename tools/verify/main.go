// Package verify implements the "verify" subcommand: report on the blocks
// of an already-built UF2 image.
package verify

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/gcbootcraft/uf2"
)

const usageString = `Usage:
  verify IMAGE.uf2
`

func Main(args []string) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString(usageString)
		fs.PrintDefaults()
	}
	fs.Parse(args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalln("verify:", err)
	}

	stream, err := uf2.ParseStream(raw)
	if err != nil {
		log.Fatalln("verify:", err)
	}

	if len(stream.Blocks) == 0 {
		fmt.Println("0 blocks")
		return
	}

	families := map[uint32]int{}
	start, end := stream.Blocks[0].TargetAddr, stream.Blocks[0].TargetAddr+stream.Blocks[0].PayloadSize
	for _, b := range stream.Blocks {
		families[b.Family]++
		if b.TargetAddr < start {
			start = b.TargetAddr
		}
		if e := b.TargetAddr + b.PayloadSize; e > end {
			end = e
		}
	}

	fmt.Printf("%d blocks, range [%#x,%#x)\n", len(stream.Blocks), start, end)
	for family, count := range families {
		fmt.Printf("  family %#08x: %d blocks\n", family, count)
	}
}
