// Command packd serves built FSPK packs to a running game or editor over
// HTTP and pushes pack-changed notifications over a websocket so a
// connected session can hot-reload.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/framesmith/fspack-go/internal/packd"
)

func main() {
	var (
		addr     = pflag.StringP("addr", "a", ":8787", "address to listen on")
		packsDir = pflag.StringP("packs", "d", "dist", "directory of built .fspk packs to serve")
		tokenTTL = pflag.Duration("token-ttl", 15*time.Minute, "bearer token lifetime")
	)
	pflag.Parse()

	secret := os.Getenv("PACKD_SECRET")
	if secret == "" {
		log.Fatalf("packd: PACKD_SECRET must be set to the operator-configured API secret")
	}

	cfg := packd.Config{
		Addr:     *addr,
		PacksDir: *packsDir,
		Secret:   secret,
		TokenTTL: *tokenTTL,
	}

	server := packd.NewServer(cfg, packd.NewHub())
	log.Printf("packd: serving packs from %s on %s", cfg.PacksDir, cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		log.Fatalf("packd: %v", err)
	}
}
