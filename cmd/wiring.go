package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/MOYARU/mas/internal/app/reportctx"
	"github.com/MOYARU/mas/internal/config"
	"github.com/MOYARU/mas/internal/engine"
	"github.com/MOYARU/mas/internal/logging"
	msges "github.com/MOYARU/mas/internal/messages"
	"github.com/MOYARU/mas/internal/render"
	"github.com/MOYARU/mas/internal/reputation"
	"github.com/MOYARU/mas/internal/store"
	"github.com/MOYARU/mas/internal/store/memory"
	"github.com/MOYARU/mas/internal/store/postgres"
)

// closer releases pooled resources the wiring opened (the pgx pool).
type closer func()

func probeClient(s config.Settings) (*http.Client, error) {
	return engine.NewHTTPClient(engine.ClientOptions{
		Timeout:     s.ProbeTimeout(),
		ProxyURL:    s.Proxy,
		SkipVerify:  s.TLSNoVerify,
		Delay:       s.ProbeDelay(),
		MaxRequests: s.ProbeBudget,
	})
}

// newBuilder wires stores, reputation and rendering into a report builder.
// With no DATABASE_URL the stores are empty in-memory ones: every lookup
// misses, which is the honest answer on an unconfigured host.
func newBuilder(ctx context.Context, s config.Settings, logger *slog.Logger) (*reportctx.Builder, closer, error) {
	var (
		resolvers []store.Resolver
		recent    store.RecentScans
		cleanup   closer = func() {}
	)

	if s.DatabaseURL != "" {
		pool, err := postgres.Open(ctx, s.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to database: %w", err)
		}
		cleanup = pool.Close
		for _, platform := range []store.Platform{store.PlatformAndroid, store.PlatformIOS, store.PlatformWindows} {
			st, err := postgres.NewStore(pool, platform)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			resolvers = append(resolvers, st)
		}
		recent = postgres.NewRecentScans(pool)
	} else {
		logger.Warn(msges.GetUIMessage("StoreUnavailable"))
		resolvers = []store.Resolver{
			memory.NewStore(store.PlatformAndroid),
			memory.NewStore(store.PlatformIOS),
			memory.NewStore(store.PlatformWindows),
		}
		recent = memory.NewRecentScans()
	}

	opts := []reportctx.Option{
		reportctx.WithDirs(s.UploadsDir, s.DownloadsDir),
		reportctx.WithHostOS(hostTag()),
		reportctx.WithPDF(render.DetectPDF(s.Proxy)),
	}

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	opts = append(opts, reportctx.WithRenderer(renderer))

	if s.ReputationEnabled {
		client, err := probeClient(s)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		svc := reputation.NewClient(client, s.ReputationBaseURL, s.ReputationAPIKey,
			logging.New("reputation", verbose))
		opts = append(opts, reportctx.WithReputation(svc))
	}

	return reportctx.NewBuilder(resolvers, recent, logger, opts...), cleanup, nil
}

func hostTag() string {
	if runtime.GOOS == "windows" {
		return "windows"
	}
	return "nix"
}
