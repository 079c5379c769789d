package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/prometheus/client_golang/prometheus"
	zLog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go-campaigner/internal/agents/marketing"
	"go-campaigner/internal/agents/toolloop"
	"go-campaigner/internal/api"
	"go-campaigner/internal/reasoning"
	"go-campaigner/pkg/config"
	"go-campaigner/pkg/logger"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/progress"
	"go-campaigner/pkg/skills"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	root := &cobra.Command{
		Use:           "campaigner",
		Short:         "Multi-agent social media campaign generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("log-level", "info", "log level")
	_ = v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))

	load := func() (config.Config, error) {
		cfg, err := config.Load(v, configFile)
		if err != nil {
			return config.Config{}, err
		}
		if err := logger.NewGlobal(cfg.Log.Level, cfg.Log.Pretty); err != nil {
			return config.Config{}, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return cfg, nil
	}

	root.AddCommand(newServeCmd(v, load), newGenerateCmd(load))
	return root
}

func newServeCmd(v *viper.Viper, load func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the campaign HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	cmd.Flags().Int("port", 8080, "http port")
	_ = v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func newGenerateCmd(load func() (config.Config, error)) *cobra.Command {
	var requestFile string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one campaign from a request file and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return generate(cmd.Context(), cfg, requestFile, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&requestFile, "request", "r", "", "campaign request JSON file")
	_ = cmd.MarkFlagRequired("request")
	return cmd
}

func buildPipeline(cfg config.Config, reg prometheus.Registerer) (*marketing.Pipeline, error) {
	lib, err := loadSkills(cfg.Agent.SkillsDir)
	if err != nil {
		return nil, err
	}
	reasoner, err := reasoning.NewOpenAI(reasoning.Config{APIKey: cfg.LLM.APIKey, Model: cfg.LLM.Model})
	if err != nil {
		return nil, err
	}
	var metrics *marketing.Metrics
	if reg != nil {
		metrics = marketing.MustNewMetrics(reg)
	}
	return marketing.Build(reasoner, lib, metrics, toolloop.WithMaxIterations(cfg.Agent.MaxIterations))
}

func loadSkills(dir string) (*skills.Library, error) {
	if dir == "" {
		return skills.Builtin()
	}
	return skills.Dir(dir)
}

func serve(cfg config.Config) error {
	zLog.Info().Msg("starting server")
	pipeline, err := buildPipeline(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	system := actor.NewActorSystem().Root
	app, err := api.New(system, pipeline, api.Options{
		Port:           cfg.Server.Port,
		Capacity:       cfg.Campaigns.Capacity,
		StatusTimeout:  cfg.Campaigns.StatusTimeout,
		StreamInterval: cfg.Campaigns.StreamInterval,
	})
	if err != nil {
		return err
	}

	go func() {
		err := app.Start()
		if err != nil {
			zLog.Panic().Err(err).Msg("server crash")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	stop()
	zLog.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	zLog.Info().Msg("server exiting")
	return nil
}

func generate(ctx context.Context, cfg config.Config, requestFile string, out io.Writer) error {
	body, err := os.ReadFile(requestFile)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var req models.CampaignRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("unmarshal request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg, nil)
	if err != nil {
		return err
	}

	reporter := progress.New()
	reporter.Subscribe(func(ev progress.Event) {
		zLog.Info().Int("progress", ev.Progress).Str("status", string(ev.Status)).Msg(ev.Message)
	})

	res := pipeline.Run(ctx, req, reporter)
	if !res.Success {
		return fmt.Errorf("campaign generation failed: %s", res.Error)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
