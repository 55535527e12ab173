// Package preview implements the "preview" subcommand: render a FAT32
// drag-and-drop volume approximating the mass-storage volume a UF2
// bootloader presents to the host OS once a built image is flashed, so a
// developer can inspect its contents without a physical device. Real UF2
// bootloaders present FAT12 volumes, but github.com/diskfs/go-diskfs@v1.4.2
// only implements FAT32 (filesystem.TypeFat32 is its sole FAT constant), so
// the preview volume is FAT32 rather than a bit-exact stand-in.
package preview

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
)

const usageString = `Usage:
  preview -image OUT.uf2 -volume PREVIEW.img
`

const infoText = `UF2 Bootloader v1.0
Model: GameCube boot-ROM mod-chip
Board-ID: GCBOOTCRAFT
`

func Main(args []string) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString(usageString)
		fs.PrintDefaults()
	}
	image := fs.String("image", "", "already-built UF2 image to embed in the preview volume")
	volume := fs.String("volume", "", "output FAT32 volume image path")
	fs.Parse(args[1:])

	if *image == "" || *volume == "" {
		fs.Usage()
		os.Exit(1)
	}

	uf2Bytes, err := os.ReadFile(*image)
	if err != nil {
		log.Fatalln("preview:", err)
	}

	// The Microsoft FAT spec requires a FAT32 volume to have at least
	// 65525 clusters; go-diskfs unconditionally writes FAT32 boot-sector
	// fields with no auto-downgrade to FAT12/16 for small volumes, so the
	// volume must be sized well past that floor (~32 MiB at the smallest
	// FAT32 cluster size) or the result isn't a spec-compliant FAT32
	// volume at all.
	const volumeSize = 64 * 1024 * 1024

	d, err := diskfs.Create(*volume, volumeSize, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		log.Fatalln("preview:", err)
	}

	volFS, err := d.CreateFilesystem(disk.FilesystemSpec{
		Partition:   0,
		FSType:      filesystem.TypeFat32,
		VolumeLabel: "GCBOOT",
	})
	if err != nil {
		log.Fatalln("preview:", err)
	}

	writeFile(volFS, "/INFO_UF2.TXT", []byte(infoText))
	writeFile(volFS, "/"+filepath.Base(*image), uf2Bytes)

	fmt.Printf("preview volume written to %s\n", *volume)
}

func writeFile(fs filesystem.FileSystem, path string, data []byte) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC)
	if err != nil {
		log.Fatalln("preview:", err)
	}
	if _, err := f.Write(data); err != nil {
		log.Fatalln("preview:", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalln("preview:", err)
	}
}
