package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zen-systems/captiongate/pkg/backend"
	"github.com/zen-systems/captiongate/pkg/caption"
	"github.com/zen-systems/captiongate/pkg/config"
	"github.com/zen-systems/captiongate/pkg/platform"
)

var (
	catalogFile string
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "captiongate",
		Short: "Caption generation orchestrator with cost-aware routing and bounded fallback",
		Long: `Captiongate routes caption requests to the most appropriate generative
	backend based on request complexity and relative cost, builds
	platform-aware prompts, and falls back to the designated reliable
	backend when the primary attempt fails.`,
	}

	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "path to provider catalog file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(platformsCmd())
	rootCmd.AddCommand(backendsCmd())
	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var (
		platformFlag   string
		backendFlag    string
		modelFlag      string
		temperature    float64
		maxLength      int
		variations     int
		noFallback     bool
		brandVoiceFile string
		imageFile      string
		useMock        bool
		jsonOut        bool
	)

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate a caption for a target platform",
		Long: `Generates a caption for the given prompt. The backend is chosen by
	cost/complexity heuristics unless --backend forces one. Brand voice
	and image context files are YAML documents matching the request
	structures.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			backends, err := createBackends(cfg, useMock)
			if err != nil {
				return err
			}

			aliases, err := config.LoadAliasesWithFallback()
			if err != nil {
				return fmt.Errorf("failed to load model aliases: %w", err)
			}

			req := caption.Request{
				Prompt:   args[0],
				Platform: platform.Platform(platformFlag),
			}
			req.Preferences.Backend = backendFlag
			req.Preferences.Model = modelFlag
			req.Preferences.Variations = variations
			if cmd.Flags().Changed("temperature") {
				req.Preferences.Temperature = &temperature
			}
			if cmd.Flags().Changed("max-length") {
				req.Preferences.MaxLength = &maxLength
			}
			if noFallback {
				disabled := false
				req.Preferences.FallbackEnabled = &disabled
			}

			if brandVoiceFile != "" {
				voice := &caption.BrandVoice{}
				if err := readYAMLFile(brandVoiceFile, voice); err != nil {
					return fmt.Errorf("failed to read brand voice file: %w", err)
				}
				req.BrandVoice = voice
			}
			if imageFile != "" {
				imageCtx := &caption.ImageContext{}
				if err := readYAMLFile(imageFile, imageCtx); err != nil {
					return fmt.Errorf("failed to read image context file: %w", err)
				}
				req.ImageContext = imageCtx
			}

			orchestrator := caption.New(backends, cfg.Catalog,
				caption.WithAliases(aliases),
				caption.WithLogger(logger()))

			results, err := orchestrator.GenerateVariations(context.Background(), req)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(results)
			}
			for i, result := range results {
				if len(results) > 1 {
					fmt.Printf("--- variation %d ---\n", i+1)
				}
				printResult(result)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&platformFlag, "platform", "p", string(platform.FeedPost), "target platform")
	cmd.Flags().StringVar(&backendFlag, "backend", "", "force a specific backend")
	cmd.Flags().StringVar(&modelFlag, "model", "", "force a specific model or alias")
	cmd.Flags().Float64VarP(&temperature, "temperature", "t", 0, "sampling temperature")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "maximum output length in tokens")
	cmd.Flags().IntVarP(&variations, "variations", "n", 1, "number of caption variations")
	cmd.Flags().BoolVar(&noFallback, "no-fallback", false, "disable the fallback attempt")
	cmd.Flags().StringVar(&brandVoiceFile, "brand-voice", "", "path to a brand voice YAML file")
	cmd.Flags().StringVar(&imageFile, "image-context", "", "path to an image context YAML file")
	cmd.Flags().BoolVar(&useMock, "mock", false, "use mock backends for a dry run")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON output")

	return cmd
}

func platformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List platform profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PLATFORM\tMAX\tOPTIMAL\tHASHTAGS\tSTYLE")
			for _, p := range platform.All() {
				profile := platform.ProfileFor(p)
				fmt.Fprintf(w, "%s\t%d\t%d-%d\t%d-%d\t%s\n",
					p, profile.MaxLength,
					profile.OptimalMin, profile.OptimalMax,
					profile.MinHashtags, profile.MaxHashtags,
					profile.Style)
			}
			return w.Flush()
		},
	}
}

func backendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List catalog backends and their tier models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			names := make([]string, 0, len(cfg.Catalog.Backends))
			for name := range cfg.Catalog.Backends {
				names = append(names, name)
			}
			sort.Strings(names)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BACKEND\tCOST\tCONFIGURED\tSIMPLE\tCOMPLEX\tCREATIVE")
			for _, name := range names {
				profile := cfg.Catalog.Backends[name]
				configured := "no"
				if cfg.HasBackend(name) {
					configured = "yes"
				}
				fmt.Fprintf(w, "%s\t%.1fx\t%s\t%s\t%s\t%s\n",
					name, profile.CostMultiplier, configured,
					profile.Models[config.TierSimple],
					profile.Models[config.TierComplex],
					profile.Models[config.TierCreative])
			}
			return w.Flush()
		},
	}
}

func estimateCmd() *cobra.Command {
	var (
		backendFlag      string
		modelFlag        string
		promptTokens     int
		completionTokens int
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the monetary cost of a completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			usage := backend.Usage{
				PromptTokens:     promptTokens,
				CompletionTokens: completionTokens,
				TotalTokens:      promptTokens + completionTokens,
			}
			cost := caption.EstimateCost(cfg.Catalog, backendFlag, modelFlag, usage)
			fmt.Printf("%.6f %s\n", cost.Amount, cost.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&backendFlag, "backend", "", "backend name")
	cmd.Flags().StringVar(&modelFlag, "model", "", "model identifier")
	cmd.Flags().IntVar(&promptTokens, "prompt-tokens", 0, "prompt token count")
	cmd.Flags().IntVar(&completionTokens, "completion-tokens", 0, "completion token count")
	_ = cmd.MarkFlagRequired("backend")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the provider catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			errs := cfg.Catalog.Validate()
			if len(errs) == 0 {
				fmt.Println("catalog is valid")
				return nil
			}
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "invalid: %v\n", e)
			}
			return fmt.Errorf("catalog has %d problem(s)", len(errs))
		},
	}
}

func loadConfig() (*config.Config, error) {
	if catalogFile != "" {
		return config.LoadWithCatalogFile(catalogFile)
	}
	return config.Load()
}

// createBackends constructs adapters for every backend with a configured
// API key. Adapters are built here and injected; nothing holds a global
// client.
func createBackends(cfg *config.Config, useMock bool) (map[string]backend.Backend, error) {
	backends := make(map[string]backend.Backend)

	if useMock {
		for name := range cfg.Catalog.Backends {
			backends[name] = backend.NewMockBackend(name, "")
		}
		return backends, nil
	}

	if cfg.AnthropicAPIKey != "" {
		b, err := backend.NewAnthropicBackend(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, err
		}
		backends["anthropic"] = b
	}
	if cfg.OpenAIAPIKey != "" {
		b, err := backend.NewOpenAIBackend(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		backends["openai"] = b
	}
	if cfg.GoogleAPIKey != "" {
		b, err := backend.NewGoogleBackend(cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		backends["google"] = b
	}

	if len(backends) == 0 {
		return nil, fmt.Errorf("no backends configured; set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GOOGLE_API_KEY (or use --mock)")
	}
	return backends, nil
}

func logger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func readYAMLFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

func printResult(result *caption.Result) {
	if !result.Succeeded() {
		fmt.Printf("generation failed: %s\n", result.Failure.Message)
		return
	}

	fmt.Println(result.Text)
	fmt.Println()

	meta := result.Metadata
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "backend\t%s (%s)\n", meta.Backend, meta.Model)
	fmt.Fprintf(w, "tier\t%s\n", meta.Tier)
	costNote := ""
	if meta.Cost.Approximate {
		costNote = " (approximate)"
	}
	fmt.Fprintf(w, "cost\t%.6f %s%s\n", meta.Cost.Amount, meta.Cost.Currency, costNote)
	fmt.Fprintf(w, "elapsed\t%s\n", meta.Elapsed)
	fmt.Fprintf(w, "fit score\t%.2f\n", meta.FitScore)
	fmt.Fprintf(w, "voice score\t%.2f\n", meta.VoiceScore)
	fmt.Fprintf(w, "fallback used\t%t\n", meta.FallbackUsed)
	if len(result.Hashtags) > 0 {
		fmt.Fprintf(w, "hashtags\t%s\n", strings.Join(result.Hashtags, ", "))
	}
	if len(result.EmphasisMarkers) > 0 {
		fmt.Fprintf(w, "emphasis\t%s\n", strings.Join(result.EmphasisMarkers, " "))
	}
	_ = w.Flush()
}
