// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the ifcore interactive fiction engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/ifcore/engine"
	"github.com/nathoo/ifcore/engine/save"
	"github.com/nathoo/ifcore/engine/state"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat

	changeLogMark int // ChangeLog length at the start of the current turn, for trace output
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".ifcore", "saves")
	return &CLI{
		Engine:  eng,
		Defs:    defs,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the game loop. It shows the intro, describes the starting room,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Defs.Blueprint.Introduction != "" {
		c.printLine(c.Defs.Blueprint.Introduction)
		c.printLine("")
	}

	// Describe starting room.
	result := c.Engine.Step("look")
	c.printResult(result)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.changeLogMark = len(c.Engine.State.ChangeLog)
		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}

		switch {
		case result.RequiresSave:
			c.cmdSave("")
		case result.RequiresRestore:
			c.cmdLoad("")
		}

		if result.GameOver {
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load", "/restore":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Marshal(save.FromGameState(c.Engine.State, c.Defs.Blueprint.Title))
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	data, err := save.Unmarshal(raw)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	if err := save.ApplyTo(c.Engine.State, data); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (move %d).", name, data.Player.Moves))

	// Show current room after loading.
	result := c.Engine.Step("look")
	c.printResult(result)
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Game commands:",
		"  look (l)              — Describe the room",
		"  examine <thing> (x)   — Look closely at something",
		"  go <dir>              — Move (or just type n/s/e/w/u/d/ne/nw/se/sw/in/out/up/down)",
		"  enter / exit          — Enter or leave something",
		"  take/get <item>       — Pick something up",
		"  drop <item>           — Put something down",
		"  put <item> in <thing> — Put something inside a container",
		"  put <item> on <thing> — Put something on a surface",
		"  wear / remove <item>  — Wear or take off something",
		"  open / close          — Open or close something",
		"  lock / unlock <thing> with <key>",
		"  turn on / turn off <thing>",
		"  read <item>           — Read text on something",
		"  smell / listen / touch / eat / drink <thing>",
		"  inventory (i)         — Check what you're carrying",
		"  score                 — Check your current score",
		"  think about <topic>   — Recall what you know about something",
		"  verbose/brief/superbrief — Set room description detail",
		"  wait (z)              — Let time pass",
		"  again (g)             — Repeat your last command",
		"  save / restore        — Save or restore your progress",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Move: %d", s.Player.Moves))
	c.printSystem(fmt.Sprintf("Score: %d", s.Player.Score))
	c.printSystem(fmt.Sprintf("Location: %s", s.Player.Location))
	c.printSystem(fmt.Sprintf("Inventory: %v", state.PlayerInventory(s)))
	if len(s.GlobalFlags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.GlobalFlags))
	}
	if len(s.GameValues) > 0 {
		c.printSystem(fmt.Sprintf("Values: %v", s.GameValues))
	}
	if len(s.ActiveFuses) > 0 {
		c.printSystem(fmt.Sprintf("Fuses: %v", s.ActiveFuses))
	}
	if len(s.ActiveDaemons) > 0 {
		c.printSystem(fmt.Sprintf("Daemons: %v", s.ActiveDaemons))
	}
}

func (c *CLI) printTrace(result engine.Result) {
	applied := c.Engine.State.ChangeLog[c.changeLogMark:]
	if len(applied) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] StateChanges: %d", len(applied)))
	for _, entry := range applied {
		c.printSystem(fmt.Sprintf("[trace]   %+v", entry.Change))
	}
}

func (c *CLI) printResult(result engine.Result) {
	for _, line := range result.Lines {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
