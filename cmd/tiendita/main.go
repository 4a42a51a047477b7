package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tiendita/cmd/tiendita/shop"
	"tiendita/internal/catalog"
	"tiendita/internal/config"
	"tiendita/internal/logging"
	"tiendita/internal/whatsapp"
	"tiendita/internal/zone"
)

const version = "1.0.0"

var (
	// Global flags
	configPath string
	apiURL     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd launches the interactive storefront.
var rootCmd = &cobra.Command{
	Use:   "tiendita",
	Short: "tiendita - terminal storefront with WhatsApp checkout",
	Long: `tiendita is a client-side storefront for shops that run their catalog
out of a spreadsheet.

It fetches products, delivery zones and store settings from the
spreadsheet web API, lets the shopper build a cart, auto-detects the
delivery zone from the address, and confirms the order through a
pre-filled WhatsApp message. The order is also logged back to the
spreadsheet on a best-effort basis.

Run without arguments to start the interactive shop.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.URL = apiURL
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := logging.Initialize(config.DefaultStateDir()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		// The interactive shop owns the terminal; zap is for the
		// non-interactive subcommands.
		if cmd.CalledAs() == "tiendita" {
			return nil
		}
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShop()
	},
}

// catalogCmd prints the product list.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Fetch and print the product catalog",
	RunE:  runCatalog,
}

// zonesCmd prints the configured delivery zones.
var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List delivery zones with costs and address keywords",
	RunE:  runZones,
}

// detectCmd runs zone auto-detection once for a given address.
var detectCmd = &cobra.Command{
	Use:   "detect [address]",
	Short: "Detect the delivery zone for a free-text address",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tiendita version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tiendita %s\n", version)
	},
}

func newClient() (*catalog.Client, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	cc := catalog.DefaultClientConfig(cfg.API.URL)
	cc.Timeout = timeout
	cc.MaxRetries = cfg.API.MaxRetries
	cc.FallbackContact = cfg.Store.WhatsAppContact
	return catalog.NewClient(cc), nil
}

func runShop() error {
	client, err := newClient()
	if err != nil {
		return err
	}
	logging.Boot("starting interactive shop (api=%s)", cfg.API.URL)

	p := tea.NewProgram(shop.New(client), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("shop exited with error: %w", err)
	}

	// Give the best-effort order log a chance to finish before the
	// process dies. Nothing user-visible depends on it.
	if m, ok := final.(shop.Model); ok {
		if d := m.Dispatcher(); d != nil {
			d.Wait()
		}
	}
	return nil
}

func fetchCatalog(ctx context.Context) (*catalog.Catalog, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return client.Fetch(ctx)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	logger.Debug("fetching catalog", zap.String("url", cfg.API.URL))
	cat, err := fetchCatalog(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%-32s %10s  %s\n", "PRODUCTO", "PRECIO", "CATEGORÍA")
	for _, p := range cat.Products {
		fmt.Printf("%-32s %10.0f  %s\n", p.Name, p.Price, p.Category)
	}
	logger.Info("catalog fetched",
		zap.Int("products", len(cat.Products)),
		zap.Int("zones", len(cat.Zones)))
	return nil
}

func runZones(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	cat, err := fetchCatalog(ctx)
	if err != nil {
		return err
	}

	for _, z := range cat.Zones {
		fmt.Printf("%-20s +$%-6.0f %s\n", z.Name, z.Cost, strings.Join(z.Keywords, ", "))
	}
	fmt.Printf("\nEnvío gratis desde: $%.0f\n", cat.Config.FreeShippingFrom)
	fmt.Printf("Contacto: %s\n", whatsapp.ContactLink(cat.Config.WhatsAppContact))
	return nil
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	address := strings.Join(args, " ")
	cat, err := fetchCatalog(ctx)
	if err != nil {
		return err
	}

	z, ok := zone.Match(address, cat.Zones)
	if !ok {
		fmt.Printf("Sin coincidencias para %q\n", address)
		return nil
	}
	fmt.Printf("Zona: %s (+$%.0f)\n", z.Name, z.Cost)
	fmt.Printf("Barrios: %s\n", zone.Suggestions(z))
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "storefront API URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(catalogCmd, zonesCmd, detectCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
