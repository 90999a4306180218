package main

import (
	"flag"
	"log"

	"github.com/Bumblebig/UniSupport/logic"
	"github.com/Bumblebig/UniSupport/pkg"
	"github.com/Bumblebig/UniSupport/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "UniSupport server URL")
	flag.Parse()

	api := pkg.NewAPIClient(*server)
	p := tea.NewProgram(tui.NewModel(api), tea.WithAltScreen())

	// The guard watches the client session; on sign-out (logout or a
	// rejected token) it pushes the view back to the login form.
	guard := logic.NewGuard(api, func() {
		p.Send(tui.SessionClosedMsg{})
	})
	defer guard.Close()

	if _, err := p.Run(); err != nil {
		log.Fatalf("Failed to run chat client: %v", err)
	}
}
