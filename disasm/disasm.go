// Package disasm produces a static, non-authoritative disassembly listing
// of a PRG-ROM image for a debugger's listing pane. It walks bytes purely
// mechanically -- no flow analysis, no branch following -- using the same
// opcode table the Cpu executes against, via cpu.Describe. It never drives
// execution and never touches a live Cpu or Bus.
package disasm

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"nes6502/cpu"
)

// A Line is one decoded instruction: its address, the raw bytes it spans,
// and a rendered mnemonic (mnemonic plus a bare hex rendering of its
// operand -- this is a listing aid, not a full addressing-mode-aware
// formatter).
type Line struct {
	Addr  uint16
	Bytes []byte
	Text  string
}

// chunkCount bounds how many goroutines a single Disassemble call spawns;
// a ROM image is rarely more than a few hundred KiB, so this is plenty of
// parallelism without oversubscribing small images.
const chunkCount = 8

// Disassemble walks prg from offset 0, decoding one instruction boundary at
// a time, and returns the listing in address order. base is added to every
// byte offset to render CPU-visible addresses (e.g. 0x8000 for a PRG-ROM
// image mapped at the bottom of the upper half).
//
// The walk is split into independent byte-range chunks aligned on known
// instruction boundaries from a quick linear pre-pass, then each chunk is
// decoded concurrently; a malformed chunk (one that runs off the end of
// prg mid-instruction) degrades to a partial listing rather than failing
// the whole call.
func Disassemble(prg []byte, base uint16) ([]Line, error) {
	if len(prg) == 0 {
		return nil, nil
	}

	boundaries := instructionBoundaries(prg)
	chunks := splitBoundaries(boundaries, len(prg))

	results := make([][]Line, len(chunks))
	var g errgroup.Group
	for i, ch := range chunks {
		i, ch := i, ch
		g.Go(func() error {
			lines, err := decodeRange(prg, ch.start, ch.end, base)
			if err != nil {
				return fmt.Errorf("disasm: chunk [%d:%d]: %w", ch.start, ch.end, err)
			}
			results[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Line, 0, len(prg)/2)
	for _, lines := range results {
		out = append(out, lines...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out, nil
}

// instructionBoundaries runs a quick single-pass decode to find byte
// offsets that land on an instruction start, used only to choose where to
// split work across goroutines -- it is not itself part of the returned
// listing.
func instructionBoundaries(prg []byte) []int {
	var bounds []int
	for i := 0; i < len(prg); {
		bounds = append(bounds, i)
		_, _, size, ok := cpu.Describe(prg[i])
		if !ok || size == 0 {
			i++
			continue
		}
		i += size
	}
	return bounds
}

type chunkRange struct{ start, end int }

// splitBoundaries groups consecutive instruction boundaries into roughly
// chunkCount equal-sized, non-overlapping byte ranges.
func splitBoundaries(bounds []int, total int) []chunkRange {
	if len(bounds) == 0 {
		return nil
	}
	n := chunkCount
	if n > len(bounds) {
		n = len(bounds)
	}
	perChunk := (len(bounds) + n - 1) / n

	var chunks []chunkRange
	for i := 0; i < len(bounds); i += perChunk {
		start := bounds[i]
		end := total
		if i+perChunk < len(bounds) {
			end = bounds[i+perChunk]
		}
		chunks = append(chunks, chunkRange{start: start, end: end})
	}
	return chunks
}

// decodeRange decodes every instruction boundary within [start, end),
// stopping early (without error) if an opcode near the tail would need
// operand bytes past end.
func decodeRange(prg []byte, start, end int, base uint16) ([]Line, error) {
	var lines []Line
	for i := start; i < end; {
		opcode := prg[i]
		mnemonic, mode, size, ok := cpu.Describe(opcode)
		if !ok {
			lines = append(lines, Line{
				Addr:  base + uint16(i),
				Bytes: prg[i : i+1],
				Text:  fmt.Sprintf(".byte $%02X", opcode),
			})
			i++
			continue
		}
		if i+size > len(prg) {
			break
		}

		raw := prg[i : i+size]
		lines = append(lines, Line{
			Addr:  base + uint16(i),
			Bytes: raw,
			Text:  renderText(mnemonic, mode, raw),
		})
		i += size
	}
	return lines, nil
}

// renderText renders a mnemonic and its raw operand bytes as a plain hex
// operand -- sufficient for a listing pane, not a full syntax like "$12,X".
func renderText(mnemonic string, mode cpu.AddressingMode, raw []byte) string {
	switch len(raw) {
	case 1:
		return mnemonic
	case 2:
		return fmt.Sprintf("%s $%02X", mnemonic, raw[1])
	case 3:
		return fmt.Sprintf("%s $%02X%02X", mnemonic, raw[2], raw[1])
	default:
		return mnemonic
	}
}
