// Command gcbootcraft assembles a flashable GameCube boot-ROM mod-chip
// firmware image from a base UF2 image and a DOL executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/gcbootcraft/tools/build"
	"github.com/clktmr/gcbootcraft/tools/preview"
	"github.com/clktmr/gcbootcraft/tools/verify"
)

const usageString = `gcbootcraft assembles GameCube boot-ROM mod-chip firmware images.

Usage:

	%s <command> [arguments]

The commands are:

	build    merge a DOL into a base UF2 firmware image
	preview  render a FAT32 approximation of the drag-and-drop volume a built image would present
	verify   report on the blocks of an already-built UF2 image
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "build":
		build.Main(flag.Args())
	case "preview":
		preview.Main(flag.Args())
	case "verify":
		verify.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
