package config

import (
	"flag"
	"os"
	"time"

	"github.com/paydesk/paydesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the payment backend
//	-t int      request timeout in seconds
//	-s string   store driver: sqlite, redis or memory
//	-d string   sqlite database path
//	-r string   redis host:port
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// loaders (-c) do not make parsing fail.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the payment backend")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "local store driver: sqlite, redis or memory")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only wins when given, so a JSON timeout such as "500ms" is not
	// rounded down to whole seconds.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
