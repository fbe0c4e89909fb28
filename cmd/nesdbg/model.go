package main

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"nes6502/cpu"
	"nes6502/disasm"
	"nes6502/mem"
)

type model struct {
	cpu         *cpu.Cpu
	bus         *mem.Bus
	maxSteps    int
	breakpoints map[uint16]bool
	logger      *slog.Logger

	stepsTaken int
	prevPC     uint16
	halted     bool
}

func newModel(c *cpu.Cpu, bus *mem.Bus, maxSteps int, breakpoints []uint16, logger *slog.Logger) model {
	bps := make(map[uint16]bool, len(breakpoints))
	for _, addr := range breakpoints {
		bps[addr] = true
	}
	return model{
		cpu:         c,
		bus:         bus,
		maxSteps:    maxSteps,
		breakpoints: bps,
		logger:      logger,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			if m.halted {
				return m, nil
			}
			m.prevPC = m.cpu.PC
			m.cpu.ExecNextInstr(m.bus)
			m.stepsTaken++

			if m.breakpoints[m.cpu.PC] {
				m.logger.Info("hit breakpoint", slog.String("pc", fmt.Sprintf("0x%04x", m.cpu.PC)))
				m.halted = true
			}
			if m.maxSteps > 0 && m.stepsTaken >= m.maxSteps {
				m.halted = true
			}
		}
	}
	return m, nil
}

// renderPage renders one 16-byte row of memory as a line, highlighting PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.bus.Read(start + i)
		if start+i == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	p := m.cpu.P
	var flags string
	for _, bit := range []uint8{cpu.FlagN, cpu.FlagV, cpu.FlagU, cpu.FlagB, cpu.FlagD, cpu.FlagI, cpu.FlagZ, cpu.FlagC} {
		if p&bit != 0 {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
 A: %02x
 X: %02x
 Y: %02x
SP: %02x
steps: %d/%d
N V U B D I Z C
`,
		m.cpu.PC, m.prevPC,
		m.cpu.A, m.cpu.X, m.cpu.Y, m.cpu.SP,
		m.stepsTaken, m.maxSteps,
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	base := m.cpu.PC &^ 0x0f
	rows := []string{header}
	for i := -2; i <= 2; i++ {
		rows = append(rows, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(rows, "\n")
}

func (m model) disasmPane() string {
	lines, err := disasm.Disassemble(m.bus.PRGSnapshot(), 0x8000)
	if err != nil {
		return fmt.Sprintf("disasm error: %v", err)
	}
	var b strings.Builder
	for _, line := range lines {
		if line.Addr == m.cpu.PC {
			fmt.Fprintf(&b, "-> %04x  %s\n", line.Addr, line.Text)
		} else {
			fmt.Fprintf(&b, "   %04x  %s\n", line.Addr, line.Text)
		}
		if line.Addr > m.cpu.PC+0x20 {
			break
		}
	}
	return b.String()
}

func (m model) View() string {
	mnemonic, _, _, ok := cpu.Describe(m.bus.Read(m.cpu.PC))
	opView := "unknown opcode"
	if ok {
		opView = spew.Sdump(mnemonic)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		m.disasmPane(),
		opView,
	)
}
