// Package build implements the "build" subcommand: merge a DOL into a base
// UF2 firmware image.
package build

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/buildkite/shellwords"
	"github.com/kballard/go-shellquote"

	"github.com/clktmr/gcbootcraft/firmware"
	"github.com/clktmr/gcbootcraft/internal/buildreport"
	"github.com/clktmr/gcbootcraft/uf2"
)

const usageString = `Usage:
  build [OPTIONS] -base BASE.uf2 -dol GAME.dol -out OUT.uf2
Options:
`

var families = map[string]uf2.Family{
	"rp2040": uf2.RP2040,
	"rp2350": uf2.RP2350,
}

func Main(args []string) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString(usageString)
		fs.PrintDefaults()
	}

	base := fs.String("base", "", "base UF2 firmware image")
	dolPath := fs.String("dol", "", "GameCube DOL executable")
	out := fs.String("out", "", "output UF2 image path")
	family := fs.String("family", "rp2040", "target family: rp2040 | rp2350")
	postCmd := fs.String("post-cmd", "", "command to run against OUT after a successful build")
	postCmdArgs := fs.String("post-cmd-args", "", "extra whitespace-separated arguments appended to -post-cmd")
	fs.Parse(args[1:])

	if *base == "" || *dolPath == "" || *out == "" {
		fs.Usage()
		os.Exit(1)
	}

	fam, ok := families[*family]
	if !ok {
		log.Fatalf("build: unknown family %q", *family)
	}

	baseBytes, err := os.ReadFile(*base)
	if err != nil {
		log.Fatalln("build:", err)
	}
	dolBytes, err := os.ReadFile(*dolPath)
	if err != nil {
		log.Fatalln("build:", err)
	}

	final, err := firmware.Build(baseBytes, dolBytes, fam)
	if err != nil {
		log.Fatalln("build:", err)
	}

	if err := os.WriteFile(*out, final, 0o644); err != nil {
		log.Fatalln("build:", err)
	}

	stream, err := uf2.ParseStream(final)
	if err != nil {
		log.Fatalln("build: reparsing output:", err)
	}
	baseStream, _ := uf2.ParseStream(baseBytes)
	report := buildreport.New(
		final, len(stream.Blocks), *family,
		rangeOf(baseStream.Blocks), rangeOf(stream.Blocks[len(baseStream.Blocks):]),
	)
	fmt.Println(report)

	if *postCmd != "" {
		runPostCmd(*postCmd, *postCmdArgs, *out)
	}
}

func rangeOf(blocks []uf2.Block) [2]uint32 {
	if len(blocks) == 0 {
		return [2]uint32{}
	}
	start, end := blocks[0].TargetAddr, blocks[0].TargetAddr+blocks[0].PayloadSize
	for _, b := range blocks[1:] {
		if b.TargetAddr < start {
			start = b.TargetAddr
		}
		if e := b.TargetAddr + b.PayloadSize; e > end {
			end = e
		}
	}
	return [2]uint32{start, end}
}

func runPostCmd(cmdline, extra, outPath string) {
	args, err := shellquote.Split(cmdline)
	if err != nil {
		log.Fatalln("build: post-cmd:", err)
	}
	if extra != "" {
		extraArgs, err := shellwords.Split(extra)
		if err != nil {
			log.Fatalln("build: post-cmd-args:", err)
		}
		args = append(args, extraArgs...)
	}
	args = append(args, outPath)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Fatalln("build: post-cmd:", err)
	}
}
