package cli

import (
	"time"

	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/alexanderramin/leadflow/internal/webhook"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need: the remote gateway, local services and the
// strategy options every chat starts from.
type App struct {
	Catalog     *catalog.Catalog
	Gateway     webhook.Gateway
	Discoveries service.DiscoveryService
	Gates       service.GateService

	// Bot is the template for each chat's strategy factory. Catalog, QA, Leads
	// and OnComplete are filled in per chat.
	Bot bot.Options

	// IsInteractive reports whether stdin is a terminal. Nil means plain mode.
	IsInteractive func() bool

	Now func() time.Time
}

func (a *App) catalog() *catalog.Catalog {
	if a.Catalog == nil {
		a.Catalog = catalog.Default()
	}
	return a.Catalog
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "leadflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "leadflow",
		Short:         "Talk to the consultancy assistant or plan an AI project",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newChatCmd(app),
		newAskCmd(app),
		newAnalyzeCmd(app),
		newCatalogCmd(app),
		newSessionsCmd(app),
		newGatesCmd(app),
	)

	return root
}
