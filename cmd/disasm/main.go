// Command disasm statically disassembles a raw 6502 binary image without
// executing anything, reusing the cpu package's opcode metadata table so
// its mnemonics and addressing-mode suffixes always match what cmd/trace
// reports at runtime.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mos6502/cpu"
	"mos6502/memory"
)

var (
	loadAddrFlag = flag.String("load_addr", "8000", "hex address to load the image at (ignored for a 16KiB image, which uses the $8000/$C000-mirrored ROM convention instead)")
	startFlag    = flag.String("start", "", "hex address to start disassembling from; defaults to the load address")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: disasm [flags] <image>")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading %s: %v", flag.Arg(0), err)
	}

	mem := memory.NewFlatMemory()

	// end is an int so that an image reaching $FFFF does not wrap to 0.
	var loadAddr uint16
	var end int
	if len(data) == 0x4000 {
		// A single 16KiB PRG bank loads at $8000 and mirrors at $C000,
		// the convention spec.md §6 describes.
		memory.LoadROM(mem, data)
		loadAddr = 0x8000
		end = 0x8000 + 2*0x4000
	} else {
		if _, err := fmt.Sscanf(*loadAddrFlag, "%x", &loadAddr); err != nil {
			log.Fatalf("parsing -load_addr: %v", err)
		}
		memory.LoadAt(mem, loadAddr, data)
		end = int(loadAddr) + len(data)
	}

	start := loadAddr
	if *startFlag != "" {
		if _, err := fmt.Sscanf(*startFlag, "%x", &start); err != nil {
			log.Fatalf("parsing -start: %v", err)
		}
	}

	for pc := int(start); pc < end; {
		line, length := cpu.Disassemble(mem, uint16(pc))
		fmt.Println(line)
		pc += length
	}
}
