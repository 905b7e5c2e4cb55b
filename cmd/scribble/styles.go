package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	colorPrimary = "39"  // Blue
	colorSuccess = "42"  // Green
	colorMuted   = "245" // Gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))
)

// printBanner reports where the editor is serving and what it found on disk.
func printBanner(root string, totalImages, maskCount int, url string) {
	fmt.Println(titleStyle.Render("scribble"))
	fmt.Printf("%s %s\n", labelStyle.Render("project:"), root)
	fmt.Printf("%s %s\n", labelStyle.Render("images: "), valueStyle.Render(fmt.Sprintf("%d", totalImages)))
	fmt.Printf("%s %s\n", labelStyle.Render("masks:  "), valueStyle.Render(fmt.Sprintf("%d", maskCount)))
	fmt.Printf("%s %s\n", labelStyle.Render("editor: "), url)
}
