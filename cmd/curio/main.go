package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/curiobooks/curio/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	envPath := flag.String("env", "", "path to a .env file (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	allowRaces := flag.Bool("allow-races", false, "allow overlapping submissions in conversation mode")
	skipProbe := flag.Bool("no-probe", false, "skip the startup backend health probe")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		EnvPath:    *envPath,
		PrefsPath:  *prefsPath,
		AllowRaces: *allowRaces,
		SkipProbe:  *skipProbe,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "curio: %v\n", err)
		return 1
	}
	return 0
}
