package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	sdnotify "github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"

	"github.com/modoterra/logforge/internal/buildinfo"
	"github.com/modoterra/logforge/pkg/core"
	"github.com/modoterra/logforge/pkg/emitter"
	"github.com/modoterra/logforge/pkg/generators"
	"github.com/modoterra/logforge/pkg/profile"
	"github.com/modoterra/logforge/pkg/service"
	"github.com/modoterra/logforge/pkg/transport/uds"
	tuimodel "github.com/modoterra/logforge/pkg/tui/model"
)

// The tick interval is fixed; only the target directory is configurable.
const emitInterval = time.Second

const defaultProfilePath = "logforge.yaml"

var (
	socketPath  string
	dirFlag     string
	profileFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logforge",
	Short: "Append synthetic system log lines to demo directories",
	Long: "Logforge fabricates plausible auth, bootstrap, fontconfig, kernel, and syslog\n" +
		"lines and appends them to flat files once per second, so log shippers and\n" +
		"dashboards have something to chew on.",
	RunE: runEmitter,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", profile.DefaultSocket, "emitter control socket path")
	rootCmd.Flags().StringVar(&dirFlag, "dir", "", "base directory for emitted files (overrides profile)")
	rootCmd.Flags().StringVar(&profileFlag, "profile", "", "path to logforge.yaml")

	rootCmd.AddCommand(onceCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadRunProfile resolves the effective profile: --profile if given, then
// ./logforge.yaml, then built-in defaults; --dir and --socket override it.
func loadRunProfile() (*profile.Profile, error) {
	var prof *profile.Profile
	switch {
	case profileFlag != "":
		p, err := profile.Load(profileFlag)
		if err != nil {
			return nil, err
		}
		prof = p
	default:
		if p, err := profile.Load(defaultProfilePath); err == nil {
			prof = p
		} else {
			prof = profile.Default()
		}
	}

	if dirFlag != "" {
		prof.Dir = dirFlag
	}
	if socketPath != profile.DefaultSocket {
		prof.Socket = socketPath
	}

	if errs := profile.Validate(prof); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "profile: %s\n", e)
		}
		return nil, fmt.Errorf("invalid profile")
	}
	return prof, nil
}

func newEmitter(prof *profile.Profile, logger *slog.Logger) (*emitter.Emitter, error) {
	cats, err := profile.EnabledCategories(prof)
	if err != nil {
		return nil, err
	}
	gens := generators.ForCategories(cats, prof.Host)
	return emitter.New(prof.Dir, emitInterval, gens, prof.Seed, logger), nil
}

// --- Root: run the emitter ---

func runEmitter(_ *cobra.Command, _ []string) error {
	prof, err := loadRunProfile()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	em, err := newEmitter(prof, logger)
	if err != nil {
		return err
	}

	srv := uds.NewServer(prof.Socket, logger)
	defer srv.Shutdown()
	registerHandlers(srv, em)

	em.OnEmission(func(e core.Emission) {
		if evt, err := uds.NewEvent(uds.EventEmitLine, e); err == nil {
			srv.Broadcast(evt)
		}
	})

	go func() {
		if err := srv.Start(ctx); err != nil {
			logger.Error("control socket error", "err", err)
		}
	}()

	runID := fmt.Sprintf("%s-%d", time.Now().Format("20060102-150405"), os.Getpid())
	fmt.Printf("logforge %s run %s\n", buildinfo.Version, runID)
	fmt.Printf("appending to %s every %s\n", prof.Dir, emitInterval)

	sdnotify.SdNotify(false, sdnotify.SdNotifyReady)
	defer sdnotify.SdNotify(false, sdnotify.SdNotifyStopping)

	return em.Run(ctx)
}

func registerHandlers(srv *uds.Server, em *emitter.Emitter) {
	srv.Handle(uds.MethodPing, func(_ context.Context, _ uds.Message) (any, error) {
		return uds.PingResponse{Pong: true}, nil
	})
	srv.Handle(uds.MethodStats, func(_ context.Context, _ uds.Message) (any, error) {
		return em.Stats(), nil
	})
	srv.Handle(uds.MethodPause, func(_ context.Context, _ uds.Message) (any, error) {
		em.Pause()
		return uds.PauseResponse{Paused: true}, nil
	})
	srv.Handle(uds.MethodResume, func(_ context.Context, _ uds.Message) (any, error) {
		em.Resume()
		return uds.PauseResponse{Paused: false}, nil
	})
}

// --- Once ---

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Emit a single line per category and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		prof, err := loadRunProfile()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(prof.Dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", prof.Dir, err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		em, err := newEmitter(prof, logger)
		if err != nil {
			return err
		}
		if err := em.Tick(time.Now()); err != nil {
			return err
		}
		for _, st := range em.Stats() {
			fmt.Printf("%s → %s\n", st.Category, st.File)
		}
		return nil
	},
}

func init() {
	onceCmd.Flags().StringVar(&dirFlag, "dir", "", "base directory for emitted files (overrides profile)")
	onceCmd.Flags().StringVar(&profileFlag, "profile", "", "path to logforge.yaml")
}

// --- Status ---

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-category counters of a running emitter",
	RunE: func(_ *cobra.Command, _ []string) error {
		client, err := dialEmitter()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		resp, err := client.Request(ctx, uds.MethodStats, nil)
		if err != nil {
			return err
		}

		var stats []core.Stat
		if err := resp.UnmarshalData(&stats); err != nil {
			return err
		}

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("%-12s %-16s %8s %s\n", "CATEGORY", "FILE", "LINES", "LAST")
		for _, st := range stats {
			last := "-"
			if st.LastTsUnixMs > 0 {
				last = time.UnixMilli(st.LastTsUnixMs).Format(time.TimeOnly)
			}
			fmt.Printf("%-12s %-16s %8d %s\n", st.Category, st.File, st.Lines, last)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
}

// --- Watch (TUI) ---

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live TUI view of a running emitter",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := tuimodel.New(socketPath)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

// --- Ping ---

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check if an emitter is running",
	RunE: func(_ *cobra.Command, _ []string) error {
		client, err := dialEmitter()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		resp, err := client.Request(ctx, uds.MethodPing, nil)
		if err != nil {
			return err
		}

		var pong uds.PingResponse
		if err := resp.UnmarshalData(&pong); err != nil {
			return err
		}
		if pong.Pong {
			fmt.Println("pong ✓")
		}
		return nil
	},
}

func dialEmitter() (*uds.Client, error) {
	client, err := uds.Dial(socketPath)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to emitter at %s: %w", socketPath, err)
	}
	return client, nil
}

// --- Profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the logforge.yaml profile",
}

var profileInitOutput string

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default logforge.yaml",
	RunE: func(_ *cobra.Command, _ []string) error {
		p := profile.Default()
		if err := profile.Save(p, profileInitOutput); err != nil {
			return err
		}
		fmt.Printf("Generated %s (dir: %s)\n", profileInitOutput, p.Dir)
		return nil
	},
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a logforge.yaml profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := defaultProfilePath
		if len(args) > 0 {
			path = args[0]
		}

		p, err := profile.Load(path)
		if err != nil {
			return err
		}

		errs := profile.Validate(p)
		if len(errs) == 0 {
			fmt.Printf("%s: valid\n", path)
			return nil
		}

		fmt.Fprintf(os.Stderr, "%s: %d error(s)\n", path, len(errs))
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  • %s\n", e)
		}
		os.Exit(1)
		return nil
	},
}

func init() {
	profileInitCmd.Flags().StringVar(&profileInitOutput, "output", defaultProfilePath, "output file path")
	profileCmd.AddCommand(profileInitCmd)
	profileCmd.AddCommand(profileValidateCmd)
}

// --- Service ---

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the logforge systemd user service",
}

var serviceInstallDir string

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and start the systemd user service",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := service.Install(serviceInstallDir); err != nil {
			return err
		}
		fmt.Println("installed logforge.service")
		return nil
	},
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop and remove the systemd user service",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := service.Uninstall(); err != nil {
			return err
		}
		fmt.Println("removed logforge.service")
		return nil
	},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service and socket status",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(service.Status(socketPath))
	},
}

func init() {
	serviceInstallCmd.Flags().StringVar(&serviceInstallDir, "dir", "logs", "base directory the service emits under")
	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)
	serviceCmd.AddCommand(serviceStatusCmd)
}

// --- Version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("logforge %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}
