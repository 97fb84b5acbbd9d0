// Command trace is a thin consumer of the core's debug-step interface:
// it loads a ROM, optionally forces the program counter, and prints N
// trace lines in the column layout a reference-log comparator expects.
// The comparator itself lives outside this repository.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/console"
	"github.com/bdwalton/nescore/rom"
)

var (
	romFile = flag.String("nes_rom", "", "Path to NES ROM to trace.")
	startPC = flag.String("pc", "", "Hex address to force PC to before tracing (e.g. C000); defaults to the reset vector.")
	count   = flag.Int("n", 5003, "Number of instructions to trace.")
)

func main() {
	flag.Parse()

	r, err := rom.New(*romFile)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	m, err := cartridge.Get(r)
	if err != nil {
		log.Fatalf("couldn't construct mapper: %v", err)
	}

	bus := console.New(m)

	if *startPC != "" {
		pc, err := strconv.ParseUint(*startPC, 16, 16)
		if err != nil {
			log.Fatalf("invalid -pc %q: %v", *startPC, err)
		}
		bus.SetPC(uint16(pc))
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for i := 0; i < *count; i++ {
		fmt.Fprintln(w, bus.DebugStepInstruction())
	}
}
