package tui

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// PrintBanner outputs the espalier ASCII art banner with the running
// version. It stays silent when stdout is not a terminal so that piped
// output remains machine readable.
func PrintBanner(version string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	p := termenv.ColorProfile()
	// Gradient runs teal to amber, an orchard at sunrise.
	s1 := termenv.String("                       _ _").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  ___  ___ _ __   __ _| (_) ___ _ __").Foreground(p.Color("#34d399"))
	s3 := termenv.String(" / _ \\/ __| '_ \\ / _` | | |/ _ \\ '__|").Foreground(p.Color("#4ade80"))
	s4 := termenv.String("|  __/\\__ \\ |_) | (_| | | |  __/ |").Foreground(p.Color("#a3e635"))
	s5 := termenv.String(" \\___||___/ .__/ \\__,_|_|_|\\___|_|").Foreground(p.Color("#facc15"))
	s6 := termenv.String("           |_|").Foreground(p.Color("#fb923c"))
	tag := termenv.String("           v" + version).Faint()

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println(tag)
	fmt.Println()
}
